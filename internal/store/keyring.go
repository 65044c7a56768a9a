// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package store

import (
	"errors"
	"sync"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "hopelink"

// keySession is the single slot holding the serialized session record.
const keySession = "admin_session"

// KeyringStore persists the session record in the OS keychain.
// Operations are thread-safe.
type KeyringStore struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// OpenKeyring opens the OS keychain using native platform backends only.
// It fails when no native credential store is available so callers can fall
// back to file storage.
func OpenKeyring() (*KeyringStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: ServiceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.WinCredBackend,
			keyring.SecretServiceBackend,
			keyring.PassBackend,
		},
		PassPrefix:    ServiceName,
		WinCredPrefix: ServiceName,
	})
	if err != nil {
		return nil, err
	}
	return &KeyringStore{ring: ring}, nil
}

// Write replaces the stored record.
func (s *KeyringStore) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring.Set(keyring.Item{Key: keySession, Data: data})
}

// Read returns the stored bytes, or (nil, nil) when the slot is empty.
func (s *KeyringStore) Read() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, err := s.ring.Get(keySession)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return it.Data, nil
}

// Clear removes the record. Missing keys are not an error.
func (s *KeyringStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ring.Remove(keySession); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
