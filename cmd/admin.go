// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"
)

// adminCmd groups the operational maintenance tasks that used to live as
// one-off scripts next to the dashboard.
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Operational maintenance tasks",
}

func init() {
	rootCmd.AddCommand(adminCmd)
}
