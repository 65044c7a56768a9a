// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session owns the admin login session: the persisted record, its
// validity rules, and the authenticated/unauthenticated state machine.
// It is the only component allowed to create or destroy the stored record.
package session

import (
	"time"
)

// TTL is the absolute lifetime of a session from the moment of login.
// Expiry is evaluated lazily on every read; there is no background timer.
const TTL = 12 * time.Hour

// Role is the closed set of account roles known to the platform.
// Only RoleAdmin grants access to the admin console.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleHomeless     Role = "homeless"
	RoleDonor        Role = "donor"
	RoleMerchant     Role = "merchant"
	RoleOrganization Role = "organization"
)

// User is the profile attached to a session.
type User struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name,omitempty"`
	DisplayInitials string `json:"displayInitials,omitempty"`
	Role            Role   `json:"role"`
}

// Record is the sole persisted entity: one logged-in admin session.
// The bearer token is stored exactly once, on the record.
type Record struct {
	User      User   `json:"user"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"` // epoch milliseconds
}

// NewRecord builds a Record expiring TTL after now.
func NewRecord(u User, token string, now time.Time) Record {
	return Record{
		User:      u,
		Token:     token,
		ExpiresAt: now.Add(TTL).UnixMilli(),
	}
}

// Expired reports whether the record's absolute expiry has passed.
func (r Record) Expired(now time.Time) bool {
	return now.UnixMilli() >= r.ExpiresAt
}

// Valid reports whether the record may back an authenticated state:
// unexpired, admin role, and a non-empty bearer token.
func (r Record) Valid(now time.Time) bool {
	return !r.Expired(now) && r.User.Role == RoleAdmin && r.Token != ""
}
