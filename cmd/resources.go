// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"hopelink/cli/internal/api"
	apperrors "hopelink/cli/internal/errors"
	"hopelink/cli/internal/httperrors"
)

// column maps a table header to candidate JSON fields; the first non-empty
// field wins, since the backend is not uniform about naming.
type column struct {
	header string
	fields []string
}

// resourceDef describes one dashboard collection exposed as a command group.
type resourceDef struct {
	use      string
	aliases  []string
	singular string
	plural   string // also the payload-validation key
	path     string
	columns  []column
}

// newResourceCmd builds the list/get/create/update/delete subcommands for a
// resource. Every subcommand fetches through the authenticated façade and
// honors Ctrl-C cancellation without surfacing it as an error.
func newResourceCmd(def resourceDef) *cobra.Command {
	parent := &cobra.Command{
		Use:     def.use,
		Aliases: def.aliases,
		Short:   fmt.Sprintf("Manage %s", def.plural),
	}

	var page, limit int
	var search string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", def.plural),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if !a.requireSession() {
				return nil
			}
			result, err := a.client.List(cmd.Context(), def.path, api.ListParams{
				Page: page, Limit: limit, Search: search,
			})
			if err != nil {
				return presentAPIError(err, "listing "+def.plural)
			}
			renderTable(def.columns, result.Items)
			if result.Pages > 1 {
				pterm.Printf("Page %d of %d (%d total)\n", result.Page, result.Pages, result.Total)
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")
	listCmd.Flags().IntVar(&limit, "limit", 20, "Items per page")
	listCmd.Flags().StringVar(&search, "search", "", "Search term")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Show one %s", def.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if !a.requireSession() {
				return nil
			}
			item, err := a.client.Get(cmd.Context(), def.path, args[0])
			if err != nil {
				return presentAPIError(err, "fetching the "+def.singular)
			}
			return printJSON(item)
		},
	}

	var createFile string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create a %s from a JSON payload", def.singular),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if !a.requireSession() {
				return nil
			}
			payload, err := loadPayload(def.plural, createFile)
			if err != nil {
				pterm.Println("❌ " + err.Error())
				return nil
			}
			item, err := a.client.Create(cmd.Context(), def.path, payload)
			if err != nil {
				return presentAPIError(err, "creating the "+def.singular)
			}
			pterm.Printf("✅ Created %s\n", def.singular)
			return printJSON(item)
		},
	}
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "JSON payload file, or '-' for stdin (required)")
	_ = createCmd.MarkFlagRequired("file")

	var updateFile string
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Update a %s from a JSON payload", def.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if !a.requireSession() {
				return nil
			}
			payload, err := loadPayload(def.plural, updateFile)
			if err != nil {
				pterm.Println("❌ " + err.Error())
				return nil
			}
			item, err := a.client.Update(cmd.Context(), def.path, args[0], payload)
			if err != nil {
				return presentAPIError(err, "updating the "+def.singular)
			}
			pterm.Printf("✅ Updated %s\n", def.singular)
			return printJSON(item)
		},
	}
	updateCmd.Flags().StringVarP(&updateFile, "file", "f", "", "JSON payload file, or '-' for stdin (required)")
	_ = updateCmd.MarkFlagRequired("file")

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s", def.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if !a.requireSession() {
				return nil
			}
			if !yes {
				ok, _ := pterm.DefaultInteractiveConfirm.
					WithDefaultText(fmt.Sprintf("Delete %s %s?", def.singular, args[0])).
					Show()
				if !ok {
					return nil
				}
			}
			if err := a.client.Delete(cmd.Context(), def.path, args[0]); err != nil {
				return presentAPIError(err, "deleting the "+def.singular)
			}
			pterm.Printf("✅ Deleted %s %s\n", def.singular, args[0])
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	parent.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd)
	return parent
}

// loadPayload reads the JSON payload from a file or stdin and validates it
// client-side before any network call.
func loadPayload(resource, file string) (any, error) {
	var raw []byte
	var err error
	if file == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return api.ValidatePayload(resource, raw)
}

// renderTable prints the items with the resource's column mapping.
func renderTable(cols []column, items []json.RawMessage) {
	if len(items) == 0 {
		pterm.Println("No results.")
		return
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.header
	}
	rows := pterm.TableData{header}
	for _, raw := range items {
		var item map[string]any
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = fieldValue(item, c.fields)
		}
		rows = append(rows, row)
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// fieldValue returns the first non-empty candidate field, stringified.
func fieldValue(item map[string]any, fields []string) string {
	for _, f := range fields {
		v, ok := item[f]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			if t == float64(int64(t)) {
				return fmt.Sprintf("%d", int64(t))
			}
			return fmt.Sprintf("%g", t)
		case bool:
			return fmt.Sprintf("%v", t)
		}
	}
	return ""
}

func printJSON(raw json.RawMessage) error {
	var buf map[string]any
	if err := json.Unmarshal(raw, &buf); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	pretty, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}

// presentAPIError converts an API failure into operator-facing output.
// Cancellation is swallowed; an invalidated session routes back to sign-in;
// network failures get the troubleshooting display.
func presentAPIError(err error, context string) error {
	switch apperrors.KindOf(err) {
	case apperrors.Cancelled:
		return nil
	case apperrors.SessionInvalid:
		fmt.Println("🔒 Your session has expired.")
		fmt.Println("   Run 'hopelink login' to sign in again.")
		return nil
	case apperrors.Network:
		return httperrors.FormatNetworkError(err, context)
	default:
		var e *apperrors.E
		if stderrors.As(err, &e) && e.Message != "" {
			pterm.Println("❌ " + e.Message)
			return nil
		}
		return err
	}
}
