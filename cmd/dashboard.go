// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// dashboardCmd renders the admin home view: summary counts across the
// platform's collections plus the most recent notifications.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"home"},
	Short:   "Show the platform overview and recent notifications",

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		if !a.requireSession() {
			return nil
		}

		ov, err := a.client.GetOverview(ctx)
		if err != nil {
			return presentAPIError(err, "loading the dashboard overview")
		}

		pterm.DefaultSection.Println("Overview")
		_ = pterm.DefaultTable.WithData(pterm.TableData{
			{"Organizations", fmt.Sprintf("%d", ov.Organizations)},
			{"Merchants", fmt.Sprintf("%d", ov.Merchants)},
			{"Donors", fmt.Sprintf("%d", ov.Donors)},
			{"Homeless users", fmt.Sprintf("%d", ov.Homeless)},
			{"Jobs", fmt.Sprintf("%d (%d open)", ov.Jobs, ov.OpenJobs)},
		}).Render()

		notes, err := a.client.GetNotifications(ctx, 5)
		if err != nil {
			// The overview already rendered; a notification failure should
			// not blank the whole screen.
			return presentAPIError(err, "loading notifications")
		}

		pterm.DefaultSection.Println("Recent notifications")
		if len(notes) == 0 {
			pterm.Println("Nothing new.")
			return nil
		}
		rows := pterm.TableData{{"When", "Type", "Message"}}
		for _, n := range notes {
			rows = append(rows, []string{n.CreatedAt, n.Type, n.Message})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
