// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Execute runs the command named by args and returns once it is done.
	Execute(ctx context.Context, args []string) error
}
