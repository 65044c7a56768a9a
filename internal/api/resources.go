// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// ListParams carries the pagination and search controls shared by every
// resource list view.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

// List fetches one page of a resource collection.
func (c *Client) List(ctx context.Context, path string, p ListParams) (Page, error) {
	var page Page
	err := c.DoJSON(ctx, Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  p.query(),
	}, &page)
	return page, err
}

// Get fetches a single resource by id.
func (c *Client) Get(ctx context.Context, path, id string) (json.RawMessage, error) {
	var item json.RawMessage
	err := c.DoJSON(ctx, Request{
		Method: http.MethodGet,
		Path:   path + "/" + url.PathEscape(id),
	}, &item)
	return item, err
}

// Create posts a new resource and returns the created document.
func (c *Client) Create(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	var item json.RawMessage
	err := c.DoJSON(ctx, Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   payload,
	}, &item)
	return item, err
}

// Update replaces a resource by id and returns the updated document.
func (c *Client) Update(ctx context.Context, path, id string, payload any) (json.RawMessage, error) {
	var item json.RawMessage
	err := c.DoJSON(ctx, Request{
		Method: http.MethodPut,
		Path:   path + "/" + url.PathEscape(id),
		Body:   payload,
	}, &item)
	return item, err
}

// Delete removes a resource by id.
func (c *Client) Delete(ctx context.Context, path, id string) error {
	return c.DoJSON(ctx, Request{
		Method: http.MethodDelete,
		Path:   path + "/" + url.PathEscape(id),
	}, nil)
}

// Overview is the analytics summary backing the dashboard home view.
type Overview struct {
	Organizations int `json:"organizations"`
	Merchants     int `json:"merchants"`
	Donors        int `json:"donors"`
	Homeless      int `json:"homeless"`
	Jobs          int `json:"jobs"`
	OpenJobs      int `json:"openJobs"`
}

// Notification is one entry of the dashboard's notification feed.
type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	Read      bool   `json:"read"`
}

// GetOverview fetches the dashboard summary counts.
func (c *Client) GetOverview(ctx context.Context) (Overview, error) {
	var ov Overview
	err := c.DoJSON(ctx, Request{
		Method: http.MethodGet,
		Path:   "/api/v1/admin/overview",
	}, &ov)
	return ov, err
}

// GetNotifications fetches the most recent notifications.
func (c *Client) GetNotifications(ctx context.Context, limit int) ([]Notification, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []Notification
	err := c.DoJSON(ctx, Request{
		Method: http.MethodGet,
		Path:   "/api/v1/notifications",
		Query:  q,
	}, &out)
	return out, err
}
