// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "hopelink/cli/internal/errors"
	"hopelink/cli/internal/session"
)

func TestAdminLogin(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantToken string
		wantRole  session.Role
		wantKind  apperrors.Kind
		wantMsg   string
	}{
		{
			name:      "token at the top level",
			status:    http.StatusOK,
			body:      `{"success":true,"data":{"user":{"id":"u1","email":"a@hopelink.org","name":"Ada Admin","role":"admin"},"token":"top-token"}}`,
			wantToken: "top-token",
			wantRole:  session.RoleAdmin,
		},
		{
			name:      "token nested inside the user",
			status:    http.StatusOK,
			body:      `{"success":true,"data":{"user":{"id":"u1","email":"a@hopelink.org","role":"admin","token":"nested-token"}}}`,
			wantToken: "nested-token",
			wantRole:  session.RoleAdmin,
		},
		{
			name:      "token in both places keeps the top-level one",
			status:    http.StatusOK,
			body:      `{"success":true,"data":{"user":{"id":"u1","role":"admin","token":"nested"},"token":"top"}}`,
			wantToken: "top",
			wantRole:  session.RoleAdmin,
		},
		{
			name:     "rejected credentials carry the server message",
			status:   http.StatusUnauthorized,
			body:     `{"success":false,"message":"Account locked"}`,
			wantKind: apperrors.Credential,
			wantMsg:  "Account locked",
		},
		{
			name:     "rejected credentials with a non-JSON body",
			status:   http.StatusUnauthorized,
			body:     `unauthorized`,
			wantKind: apperrors.Credential,
		},
		{
			name:     "success envelope without a token",
			status:   http.StatusOK,
			body:     `{"success":true,"data":{"user":{"id":"u1","role":"admin"}}}`,
			wantKind: apperrors.Unexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPayload map[string]string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/admin/login" {
					t.Errorf("login hit %s, want /api/admin/login", r.URL.Path)
				}
				if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
					t.Errorf("decode login payload: %v", err)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, &fixedTokens{})
			u, token, err := c.AdminLogin(context.Background(), "a@hopelink.org", "pw")

			if gotPayload["email"] != "a@hopelink.org" || gotPayload["password"] != "pw" {
				t.Errorf("login payload = %v", gotPayload)
			}

			if tt.wantKind != "" {
				if err == nil {
					t.Fatal("AdminLogin() succeeded, want error")
				}
				if kind := apperrors.KindOf(err); kind != tt.wantKind {
					t.Errorf("error kind = %v, want %v", kind, tt.wantKind)
				}
				if tt.wantMsg != "" {
					var e *apperrors.E
					if !errors.As(err, &e) || e.Message != tt.wantMsg {
						t.Errorf("error message = %q, want %q", err, tt.wantMsg)
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("AdminLogin() error = %v", err)
			}
			if token != tt.wantToken {
				t.Errorf("token = %q, want %q", token, tt.wantToken)
			}
			if u.Role != tt.wantRole {
				t.Errorf("role = %q, want %q", u.Role, tt.wantRole)
			}
		})
	}
}

func TestDeriveInitials(t *testing.T) {
	tests := []struct {
		name  string
		full  string
		email string
		want  string
	}{
		{name: "first and last name", full: "Ada Admin", email: "a@x.org", want: "AA"},
		{name: "three names uses the first two", full: "Ana Maria Silva", email: "", want: "AM"},
		{name: "single name", full: "Ada", email: "", want: "AD"},
		{name: "single letter", full: "A", email: "", want: "A"},
		{name: "falls back to email", full: "", email: "ops@hopelink.org", want: "OP"},
		{name: "nothing available", full: "", email: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveInitials(tt.full, tt.email); got != tt.want {
				t.Errorf("deriveInitials(%q, %q) = %q, want %q", tt.full, tt.email, got, tt.want)
			}
		})
	}
}
