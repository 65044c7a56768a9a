// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "direct typed error",
			err:  New(Credential, "bad password"),
			want: Credential,
		},
		{
			name: "typed error behind fmt wrapping",
			err:  fmt.Errorf("login: %w", New(Network, "refused")),
			want: Network,
		},
		{
			name: "context cancellation",
			err:  context.Canceled,
			want: Cancelled,
		},
		{
			name: "deadline exceeded behind wrapping",
			err:  fmt.Errorf("request: %w", context.DeadlineExceeded),
			want: Cancelled,
		},
		{
			name: "plain error",
			err:  stderrors.New("boom"),
			want: Unexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := Wrap(Network, "request failed", cause)

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable through Unwrap")
	}
	if got := err.Error(); got != "network: request failed: dial tcp: connection refused" {
		t.Errorf("Error() = %q", got)
	}
	if got := New(Credential, "nope").Error(); got != "credential: nope" {
		t.Errorf("Error() = %q", got)
	}
}
