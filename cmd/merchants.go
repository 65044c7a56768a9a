// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

func init() {
	rootCmd.AddCommand(newResourceCmd(resourceDef{
		use:      "merchants",
		singular: "merchant",
		plural:   "merchants",
		path:     "/api/v1/merchants",
		columns: []column{
			{header: "ID", fields: []string{"id", "_id"}},
			{header: "Name", fields: []string{"name"}},
			{header: "Email", fields: []string{"email"}},
			{header: "Category", fields: []string{"category"}},
			{header: "Status", fields: []string{"status"}},
		},
	}))
}
