// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package api is the HTTP client for the Hopelink backend. Every outgoing
// call goes through one façade that attaches the current bearer credential,
// so no call site carries its own header policy. The façade performs exactly
// one HTTP call per invocation: no retries, no queuing.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "hopelink/cli/internal/errors"
)

// TokenSource yields the current bearer credential, or "" when there is none.
// Implemented by the session manager, which reads through to the token store.
type TokenSource interface {
	Token() string
}

// Client issues authenticated requests against the backend API.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// NewClient creates a Client for the given API base.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
	}
}

// OnUnauthorized registers the session-invalidation hook. The façade invokes
// it whenever the backend answers 401, so a credential that is no longer
// honored kills the local session without every call site remembering to.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string // versioned path, e.g. "/api/v1/donors"
	Query  url.Values
	Body   any         // marshaled as JSON when non-nil
	Header http.Header // merged in; cannot displace the Authorization header
}

// Do performs the request and returns the raw response. The caller owns the
// body and interprets status codes. Headers are assembled as: defaults,
// then caller-supplied headers, then Authorization from the token source,
// so a caller override never silently drops the credential.
func (c *Client) Do(ctx context.Context, r Request) (*http.Response, error) {
	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.Unexpected, "encode request body", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Unexpected, "build request", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	for k, vals := range r.Header {
		req.Header.Del(k)
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	authed := false
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		authed = true
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if apperrors.IsCancelled(err) || ctx.Err() != nil {
			return nil, apperrors.Wrap(apperrors.Cancelled, "request cancelled", err)
		}
		return nil, apperrors.Wrap(apperrors.Network, "request failed", err)
	}

	// A 401 only invalidates the session when a credential was presented;
	// an unauthenticated 401 (e.g. a rejected login) says nothing about it.
	if resp.StatusCode == http.StatusUnauthorized && authed && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return resp, nil
}

// DoJSON performs the request, expects the standard response envelope, and
// decodes its data field into out (skipped when out is nil).
func (c *Client) DoJSON(ctx context.Context, r Request, out any) error {
	resp, err := c.Do(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return apperrors.New(apperrors.SessionInvalid, "session no longer valid")
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return apperrors.Wrap(apperrors.Unexpected, "decode response", err)
		}
		return apperrors.New(apperrors.Unexpected, fmt.Sprintf("request failed with status %d", resp.StatusCode))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := strings.TrimSpace(env.Message)
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return apperrors.New(apperrors.Unexpected, msg)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperrors.Wrap(apperrors.Unexpected, "decode response data", err)
	}
	return nil
}
