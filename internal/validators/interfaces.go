// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of ledger transactions before the
// ledger applies them. Rules that depend on ledger state, such as who may
// grant a request, live in the ledger package.
package validators

import "context"

// Validator validates a value. When fields are given only those fields are
// checked; otherwise every field the value's kind requires is checked.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
