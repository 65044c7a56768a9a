// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"

	"hopelink/cli/internal/logging"
	"hopelink/cli/internal/maintenance"
)

var (
	fixIndexURI        string
	fixIndexDB         string
	fixIndexCollection string
	fixIndexField      string
	fixIndexName       string
	fixIndexApply      bool
)

// fixIndexCmd repairs the unique index on a collection. The historical bug:
// the index was created unique without a partial filter, so documents with a
// missing field collided on null. The fix recreates it with a filter scoped
// to documents where the field exists. Dry-run unless --apply is given.
var fixIndexCmd = &cobra.Command{
	Use:   "fix-index",
	Short: "Repair a collection's unique index on the backing database",
	Long: `The fix-index command connects directly to the document database behind
the API, compares the named collection's unique index against the expected
definition, and reports what would change. Pass --apply to actually drop and
recreate the index.

The connection string comes from --uri, HOPELINK_MONGO_URI, or the config
file, in that order of preference.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		log := logging.Get()

		uri := strings.TrimSpace(fixIndexURI)
		if uri == "" {
			uri = strings.TrimSpace(a.cfg.MongoURI)
		}
		if uri == "" {
			pterm.Println("⚠️  No database connection configured.")
			pterm.Println("   Pass --uri or set HOPELINK_MONGO_URI.")
			return nil
		}

		log.Debug().Str("uri", logging.Mask(uri)).Str("db", fixIndexDB).Msg("connecting")
		client, db, err := maintenance.Connect(ctx, uri, fixIndexDB)
		if err != nil {
			pterm.Println("❌ " + logging.PresentError("connection failed", err))
			return nil
		}
		defer func() { _ = client.Disconnect(ctx) }()

		spec := maintenance.IndexSpec{
			Collection:    fixIndexCollection,
			Name:          fixIndexName,
			Keys:          bson.D{{Key: fixIndexField, Value: 1}},
			Unique:        true,
			PartialFilter: bson.M{fixIndexField: bson.M{"$exists": true}},
		}

		plan, err := maintenance.PlanFix(ctx, db, spec)
		if err != nil {
			pterm.Println("❌ " + logging.PresentError("inspection failed", err))
			return nil
		}

		if plan.Empty() {
			pterm.Printf("✅ Index %s on %s.%s already matches the expected definition\n",
				spec.Name, fixIndexDB, spec.Collection)
			return nil
		}

		pterm.Printf("Planned changes for %s.%s:\n", fixIndexDB, spec.Collection)
		if plan.DropName != "" {
			pterm.Printf("  • drop index %s (%s)\n", plan.DropName, plan.Reason)
		} else {
			pterm.Printf("  • %s\n", plan.Reason)
		}
		pterm.Printf("  • create unique index %s on {%s: 1} with partial filter\n",
			spec.Name, fixIndexField)

		if !fixIndexApply {
			pterm.Println()
			pterm.Println("Dry run. Re-run with --apply to execute.")
			return nil
		}

		if err := maintenance.Apply(ctx, db, spec, plan); err != nil {
			pterm.Println("❌ " + logging.PresentError("apply failed", err))
			return fmt.Errorf("fix-index: %w", err)
		}
		log.Info().Str("collection", spec.Collection).Str("index", spec.Name).Msg("index repaired")
		pterm.Println("✅ Index repaired")
		return nil
	},
}

func init() {
	adminCmd.AddCommand(fixIndexCmd)
	fixIndexCmd.Flags().StringVar(&fixIndexURI, "uri", "", "MongoDB connection string (defaults to HOPELINK_MONGO_URI)")
	fixIndexCmd.Flags().StringVar(&fixIndexDB, "db", "hopelink", "Database name")
	fixIndexCmd.Flags().StringVar(&fixIndexCollection, "collection", "users", "Collection carrying the index")
	fixIndexCmd.Flags().StringVar(&fixIndexField, "field", "email", "Indexed field")
	fixIndexCmd.Flags().StringVar(&fixIndexName, "name", "email_unique", "Index name")
	fixIndexCmd.Flags().BoolVar(&fixIndexApply, "apply", false, "Execute the plan instead of printing it")
}
