package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// whoamiCmd shows the currently authenticated account, evaluated locally
// against the stored session (expiry and role are re-checked on read).
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current authenticated account",
	Long: `The whoami command displays the account behind the current session.
If the stored session has expired or is otherwise invalid, it is removed
and you are prompted to sign in again.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		if !a.requireSession() {
			return nil
		}
		u, _ := a.mgr.CurrentUser()
		if u.Name != "" {
			fmt.Printf("👤 Current user: %s <%s>\n", u.Name, u.Email)
		} else {
			fmt.Printf("👤 Current user: %s\n", u.Email)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
