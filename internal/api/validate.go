// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// inputFor returns a fresh input struct for the named resource collection.
func inputFor(resource string) (any, bool) {
	switch resource {
	case "organizations":
		return &OrganizationInput{}, true
	case "merchants":
		return &MerchantInput{}, true
	case "donors":
		return &DonorInput{}, true
	case "homeless":
		return &HomelessInput{}, true
	case "jobs":
		return &JobInput{}, true
	default:
		return nil, false
	}
}

// ValidatePayload decodes raw JSON into the input shape for the named
// resource and validates it, mirroring the inline form validation the
// dashboard performs before submitting. The decoded payload is returned so
// unknown fields are stripped rather than forwarded.
func ValidatePayload(resource string, raw []byte) (any, error) {
	in, ok := inputFor(resource)
	if !ok {
		return nil, fmt.Errorf("unknown resource %q", resource)
	}
	if err := json.Unmarshal(raw, in); err != nil {
		return nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}
	if err := validate.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return nil, fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return nil, err
	}
	return in, nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
