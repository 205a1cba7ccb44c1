// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the consent protocol.
//
// One invocation loads the client configuration, opens the local SQLite
// vault and request cache, connects the remote ledger, analysis engine and
// blob store, and runs a single cobra command against the client services.
// The watch command keeps the reconcile worker running until interrupted.
package client
