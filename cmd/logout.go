// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// logoutCmd clears the stored session. After it returns, every command that
// needs an authenticated session falls back to the sign-in guidance.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the saved session",
	Long: `The logout command removes the stored session record from the local
system. Clearing an already-empty session is not an error.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		a.mgr.Logout()
		fmt.Println("✅ Signed out; the saved session has been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
