// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"hopelink/cli/internal/api"
	"hopelink/cli/internal/config"
	apperrors "hopelink/cli/internal/errors"
)

var (
	authCheckEmail    string
	authCheckPassword string
)

// staticToken is a TokenSource holding a fixed credential. The smoke test
// runs against its own in-memory token so the real session store is never
// touched.
type staticToken struct {
	token string
}

func (s *staticToken) Token() string { return s.token }

// authCheckCmd smoke-tests the authentication flow end to end: sign in with
// the supplied credentials, inspect the issued token, and probe a protected
// endpoint with it. It replaces the disposable script that used to do this.
var authCheckCmd = &cobra.Command{
	Use:   "auth-check",
	Short: "Smoke-test the login flow against the live API",
	Long: `The auth-check command exercises the full authentication path: it signs
in with the given credentials, decodes the issued token's claims when it is a
JWT (no signature verification, display only), and issues one authenticated
probe request. The stored session on this machine is not read or modified.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}

		tokens := &staticToken{}
		client := api.NewClient(cfg.APIBase, tokens)

		pterm.Printf("1. Signing in as %s ... ", authCheckEmail)
		u, token, err := client.AdminLogin(ctx, authCheckEmail, authCheckPassword)
		if err != nil {
			pterm.Println("❌")
			if apperrors.KindOf(err) == apperrors.Network {
				pterm.Println("   The API could not be reached.")
			} else {
				pterm.Println("   The credentials were rejected.")
			}
			return nil
		}
		pterm.Println("✅")
		pterm.Printf("   user=%s role=%s\n", u.Email, u.Role)

		pterm.Print("2. Inspecting token ... ")
		if iat, exp, ok := peekJWT(token); ok {
			pterm.Println("✅")
			if !iat.IsZero() {
				pterm.Printf("   issued:  %s\n", iat.Format(time.RFC3339))
			}
			if !exp.IsZero() {
				pterm.Printf("   expires: %s\n", exp.Format(time.RFC3339))
			}
		} else {
			pterm.Println("skipped (opaque token, no claims to display)")
		}

		pterm.Print("3. Probing a protected endpoint ... ")
		tokens.token = token
		resp, err := client.Do(ctx, api.Request{
			Method: http.MethodGet,
			Path:   "/api/v1/organizations",
			Query:  url.Values{"limit": []string{"1"}},
		})
		if err != nil {
			pterm.Println("❌")
			pterm.Println("   " + strings.TrimSpace(err.Error()))
			return nil
		}
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			pterm.Println("✅")
			pterm.Println()
			pterm.Println("Auth flow looks healthy.")
			return nil
		}
		pterm.Printf("❌ (status %d)\n", resp.StatusCode)
		return nil
	},
}

// peekJWT decodes the registered claims of a JWT without verifying its
// signature. Returns ok=false when the token is not a parseable JWT.
func peekJWT(token string) (issued, expires time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, time.Time{}, false
	}
	if t, err := claims.GetIssuedAt(); err == nil && t != nil {
		issued = t.Time
	}
	if t, err := claims.GetExpirationTime(); err == nil && t != nil {
		expires = t.Time
	}
	return issued, expires, true
}

func init() {
	adminCmd.AddCommand(authCheckCmd)
	authCheckCmd.Flags().StringVar(&authCheckEmail, "email", "", "Administrator email")
	authCheckCmd.Flags().StringVar(&authCheckPassword, "password", "", "Administrator password")
	_ = authCheckCmd.MarkFlagRequired("email")
	_ = authCheckCmd.MarkFlagRequired("password")
}
