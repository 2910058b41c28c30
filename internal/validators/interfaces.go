// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads against shape and business
// rules before they reach storage.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values.
//     Optional field names restrict the reported errors to those fields.
//   - ValidationError: field and non-field messages, rendered by the HTTP
//     layer as {field: [messages]} or {error: message}.
//   - Password rules: minimum length, common-password, numeric-only and
//     similarity checks applied to every new password.
//
// This package decouples validation logic from transport layers and storage.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts reported errors to specific named fields.
	Validate(context.Context, any, ...string) error
}
