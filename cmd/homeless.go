// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

func init() {
	rootCmd.AddCommand(newResourceCmd(resourceDef{
		use:      "homeless",
		singular: "homeless user",
		plural:   "homeless",
		path:     "/api/v1/homeless",
		columns: []column{
			{header: "ID", fields: []string{"id", "_id"}},
			{header: "Name", fields: []string{"name"}},
			{header: "Email", fields: []string{"email"}},
			{header: "Organization", fields: []string{"organizationId", "organization"}},
		},
	}))
}
