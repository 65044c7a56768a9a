// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"encoding/json"
)

// Envelope is the backend's standard response shape.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Page is a decoded list response. The backend answers either a bare array
// or a wrapped page object depending on the endpoint, so both are accepted.
type Page struct {
	Items []json.RawMessage `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Pages int               `json:"pages"`
}

// UnmarshalJSON accepts both a bare JSON array and the wrapped page shape.
func (p *Page) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		p.Items = items
		p.Total = len(items)
		p.Page = 1
		p.Pages = 1
		return nil
	}

	type alias Page
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Page(a)
	return nil
}

// OrganizationInput is the create/update payload for an organization.
type OrganizationInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Status  string `json:"status,omitempty" validate:"omitempty,oneof=active inactive pending"`
}

// MerchantInput is the create/update payload for a merchant.
type MerchantInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Category string `json:"category,omitempty"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=active inactive pending"`
}

// DonorInput is the create/update payload for a donor.
type DonorInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty"`
}

// HomelessInput is the create/update payload for a homeless user profile.
type HomelessInput struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	OrganizationID string `json:"organizationId,omitempty"`
	Story          string `json:"story,omitempty"`
}

// JobInput is the create/update payload for a job posting.
type JobInput struct {
	Title          string `json:"title" validate:"required"`
	OrganizationID string `json:"organizationId" validate:"required"`
	Description    string `json:"description,omitempty"`
	Location       string `json:"location,omitempty"`
	Wage           string `json:"wage,omitempty"`
	Status         string `json:"status,omitempty" validate:"omitempty,oneof=open filled closed"`
}
