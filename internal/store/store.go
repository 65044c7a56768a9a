// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package store implements the single-slot persistence layer for the admin
// session record. Exactly one serialized record exists at a time; a write
// replaces any prior value, a read of a missing or unreadable slot reports
// absence rather than failing, and clearing an empty slot is a no-op.
//
// Two backends are provided: the OS keychain via 99designs/keyring, and a
// plain file in the XDG state directory for hosts without a usable keychain.
package store

// Store is a durable key-value slot holding one serialized session record.
// Implementations must make Clear idempotent and must never panic on
// malformed or missing data.
type Store interface {
	// Write replaces the stored record. No partial-write or merge semantics.
	Write(data []byte) error
	// Read returns the stored bytes, or (nil, nil) when nothing is stored.
	Read() ([]byte, error)
	// Clear removes the record. Clearing an empty store is not an error.
	Clear() error
}

// Open returns the best available backend: the OS keychain when one is
// usable, otherwise a private file in the XDG state directory.
func Open() (Store, error) {
	if ks, err := OpenKeyring(); err == nil {
		return ks, nil
	}
	return OpenFile()
}
