// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors for malformed path and query parameters. They never reach
// the service layer.
var (
	// ErrInvalidRequestID is returned when the {id} path parameter is not a
	// positive integer.
	ErrInvalidRequestID = errors.New("request id must be a positive integer")

	// ErrInvalidPagination is returned when after or limit cannot be parsed.
	ErrInvalidPagination = errors.New("after and limit must be integers")
)
