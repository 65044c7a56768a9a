// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

func init() {
	rootCmd.AddCommand(newResourceCmd(resourceDef{
		use:      "orgs",
		aliases:  []string{"organizations"},
		singular: "organization",
		plural:   "organizations",
		path:     "/api/v1/organizations",
		columns: []column{
			{header: "ID", fields: []string{"id", "_id"}},
			{header: "Name", fields: []string{"name"}},
			{header: "Email", fields: []string{"email"}},
			{header: "Phone", fields: []string{"phone"}},
			{header: "Status", fields: []string{"status"}},
		},
	}))
}
