// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

func init() {
	rootCmd.AddCommand(newResourceCmd(resourceDef{
		use:      "jobs",
		singular: "job",
		plural:   "jobs",
		path:     "/api/v1/jobs",
		columns: []column{
			{header: "ID", fields: []string{"id", "_id"}},
			{header: "Title", fields: []string{"title"}},
			{header: "Organization", fields: []string{"organizationId", "organization"}},
			{header: "Location", fields: []string{"location"}},
			{header: "Status", fields: []string{"status"}},
		},
	}))
}
