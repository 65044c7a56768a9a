// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Hopelink admin
// console. It implements the sign-in lifecycle, the dashboard's resource
// views as list/get/create/update/delete subcommands, and the operational
// maintenance tasks, using the Cobra CLI framework with a pterm terminal UI.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"hopelink/cli/internal/api"
	"hopelink/cli/internal/config"
	apperrors "hopelink/cli/internal/errors"
	"hopelink/cli/internal/logging"
	"hopelink/cli/internal/session"
	"hopelink/cli/internal/store"
)

var (
	showVersion bool
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "hopelink",
	Short:         "Hopelink admin console",
	Long:          `Hopelink is the admin console for the Hopelink platform: manage organizations, merchants, donors, homeless users, and jobs from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("hopelink %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application. Interrupt cancels the command context,
// so in-flight requests are abandoned cleanly rather than reported as
// failures.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if apperrors.IsCancelled(err) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug diagnostics")
}

// app bundles the wired core: configuration, the token store, the session
// manager, and the API client. One app exists per command invocation; the
// session manager is explicitly constructed and passed along rather than
// living in a package-level global.
type app struct {
	cfg    config.Config
	store  store.Store
	mgr    *session.Manager
	client *api.Client
}

// newApp wires the core components and bootstraps the session state.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logging.Init(level, nil)

	st, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	mgr := session.NewManager(st)
	client := api.NewClient(cfg.APIBase, mgr)
	client.OnUnauthorized(mgr.Invalidate)
	mgr.SetAuthenticator(client)

	mgr.Bootstrap()

	return &app{cfg: cfg, store: st, mgr: mgr, client: client}, nil
}

// requireSession prints sign-in guidance and reports false when no valid
// admin session exists.
func (a *app) requireSession() bool {
	if a.mgr.IsAuthenticated() {
		return true
	}
	fmt.Println("🔒 You're not signed in yet!")
	fmt.Println("   Run 'hopelink login' to get started.")
	return false
}
