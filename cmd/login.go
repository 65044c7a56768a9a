// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var loginEmail string

// loginCmd signs an administrator in with email and password. A failed
// attempt prints the reason inline and leaves any stored state untouched;
// a successful one persists the session for twelve hours.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in to the admin console",
	Long: `The login command signs you in to the Hopelink admin console with your
administrator email and password. On success the session is stored securely
(OS keychain when available) and remains valid for twelve hours; commands
issued after that silently return you to the sign-in step.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		if u, ok := a.mgr.CurrentUser(); ok && a.mgr.IsAuthenticated() {
			fmt.Printf("Already signed in as %s\n", u.Email)
			return nil
		}

		email := strings.TrimSpace(loginEmail)
		if email == "" {
			email, _ = pterm.DefaultInteractiveTextInput.
				WithDefaultText("Email").
				Show()
			email = strings.TrimSpace(email)
		}
		if email == "" {
			return fmt.Errorf("email is required")
		}
		password, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText("Password").
			WithMask("*").
			Show()
		if password == "" {
			return fmt.Errorf("password is required")
		}

		stop := startInlineSpinner(os.Stdout, "Signing in", []string{"|", "/", "-", "\\"}, 120*time.Millisecond)
		res := a.mgr.Login(ctx, email, password)
		stop()

		if !res.Success {
			if res.Message != "" {
				pterm.Println("❌ " + res.Message)
			}
			return nil
		}

		u, _ := a.mgr.CurrentUser()
		pterm.Printf("✅ Signed in as %s (%s)\n", u.Email, u.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Administrator email (prompted when omitted)")
}
