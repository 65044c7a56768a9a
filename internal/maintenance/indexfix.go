// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package maintenance implements the one-off operational tasks that used to
// live as disposable scripts: inspecting and repairing indexes directly on
// the document database behind the API. Commands plan first and only touch
// the database when explicitly applied.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Connect establishes a MongoDB client, verifies connectivity with a ping,
// and returns both the client and the selected database.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(dbName), nil
}

// IndexSpec describes the index a collection is supposed to carry.
type IndexSpec struct {
	Collection    string
	Name          string
	Keys          bson.D
	Unique        bool
	PartialFilter bson.M // nil means no partial filter
}

// Plan is the outcome of comparing the live index against the spec.
type Plan struct {
	// DropName is the existing index to drop first, or "" when none exists.
	DropName string
	// Create indicates the desired index must be (re)created.
	Create bool
	// Reason explains why the plan is non-empty, for operator display.
	Reason string
}

// Empty reports whether the plan requires no changes.
func (p Plan) Empty() bool { return !p.Create && p.DropName == "" }

// existingIndex is the subset of the listIndexes document we compare.
type existingIndex struct {
	Name                    string `bson:"name"`
	Key                     bson.D `bson:"key"`
	Unique                  bool   `bson:"unique"`
	PartialFilterExpression bson.M `bson:"partialFilterExpression"`
}

// PlanFix inspects the live collection and decides what must change to make
// the index match spec. It never mutates anything.
func PlanFix(ctx context.Context, db *mongo.Database, spec IndexSpec) (Plan, error) {
	cur, err := db.Collection(spec.Collection).Indexes().List(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("list indexes on %s: %w", spec.Collection, err)
	}
	var existing []existingIndex
	if err := cur.All(ctx, &existing); err != nil {
		return Plan{}, fmt.Errorf("decode indexes on %s: %w", spec.Collection, err)
	}
	return planFrom(existing, spec), nil
}

// planFrom is the pure comparison core, separated so it can be tested
// without a live database.
func planFrom(existing []existingIndex, spec IndexSpec) Plan {
	for _, ex := range existing {
		if ex.Name != spec.Name && !keysMatch(ex.Key, spec.Keys) {
			continue
		}
		if reason := specMismatch(ex, spec); reason != "" {
			return Plan{DropName: ex.Name, Create: true, Reason: reason}
		}
		return Plan{} // already correct
	}
	return Plan{Create: true, Reason: "index is missing"}
}

// specMismatch reports why an existing index does not satisfy the spec,
// or "" when it does.
func specMismatch(ex existingIndex, spec IndexSpec) string {
	if !keysMatch(ex.Key, spec.Keys) {
		return fmt.Sprintf("index %s has different keys", ex.Name)
	}
	if ex.Unique != spec.Unique {
		return fmt.Sprintf("index %s unique=%v, want %v", ex.Name, ex.Unique, spec.Unique)
	}
	if !filtersMatch(ex.PartialFilterExpression, spec.PartialFilter) {
		return fmt.Sprintf("index %s has a different partial filter", ex.Name)
	}
	return ""
}

// keysMatch compares index key patterns, tolerating the int32/int64/float64
// variants the driver produces for sort directions.
func keysMatch(a, b bson.D) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key {
			return false
		}
		av, aok := asInt64(a[i].Value)
		bv, bok := asInt64(b[i].Value)
		if !aok || !bok || av != bv {
			return false
		}
	}
	return true
}

// filtersMatch compares partial filter expressions field by field.
func filtersMatch(a, b bson.M) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			return false
		}
		if !valuesEqual(av, bv) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if am, ok := toM(a); ok {
		bm, ok := toM(b)
		return ok && filtersMatch(am, bm)
	}
	if av, ok := asInt64(a); ok {
		bv, ok := asInt64(b)
		return ok && av == bv
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func toM(v any) (bson.M, bool) {
	switch t := v.(type) {
	case bson.M:
		return t, true
	case bson.D:
		m := bson.M{}
		for _, e := range t {
			m[e.Key] = e.Value
		}
		return m, true
	case map[string]any:
		return bson.M(t), true
	default:
		return nil, false
	}
}

func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		return int64(t), true
	default:
		return 0, false
	}
}

// Apply executes the plan: drop the conflicting index if any, then create
// the desired one.
func Apply(ctx context.Context, db *mongo.Database, spec IndexSpec, plan Plan) error {
	idx := db.Collection(spec.Collection).Indexes()

	if plan.DropName != "" {
		if _, err := idx.DropOne(ctx, plan.DropName); err != nil {
			return fmt.Errorf("drop index %s: %w", plan.DropName, err)
		}
	}
	if !plan.Create {
		return nil
	}

	opts := options.Index().SetName(spec.Name)
	if spec.Unique {
		opts.SetUnique(true)
	}
	if spec.PartialFilter != nil {
		opts.SetPartialFilterExpression(spec.PartialFilter)
	}
	if _, err := idx.CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: opts}); err != nil {
		return fmt.Errorf("create index %s: %w", spec.Name, err)
	}
	return nil
}
