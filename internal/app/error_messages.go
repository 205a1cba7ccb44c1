// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the ledger
// server handlers and the client adapters.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies. The client adapter maps them back to ledger errors, so
// the wording is part of the wire contract.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidAddress is returned when a path parameter is not a hex
	// address.
	MsgInvalidAddress = "invalid address"

	// MsgInvalidRequestID is returned when a path parameter is not a
	// positive request id.
	MsgInvalidRequestID = "invalid request id"

	// MsgInvalidPagination is returned for malformed after/limit parameters.
	MsgInvalidPagination = "invalid pagination parameters"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgLedgerUnavailable is returned when ledger state could not be read
	// or committed. Clients may retry.
	MsgLedgerUnavailable = "ledger unavailable"

	// MsgTransactionRejected is returned for a malformed transaction or any
	// rule violation without a more specific message.
	MsgTransactionRejected = "transaction rejected"

	// MsgInvalidSignature is returned when the transaction signature does not
	// belong to the sender or does not cover the transaction.
	MsgInvalidSignature = "invalid transaction signature"

	// MsgSignerBound is returned when the sender address already signs with
	// another key.
	MsgSignerBound = "invalid transaction signature: address is bound to another signer"

	// MsgAlreadyRegistered is returned when the address is already bound.
	MsgAlreadyRegistered = "address already registered"

	// MsgUnknownTarget is returned when an analysis request names an
	// unregistered target.
	MsgUnknownTarget = "target is not registered"

	// MsgSelfRequest is returned when requester and target are equal.
	MsgSelfRequest = "requester and target must differ"

	// MsgForbidden is returned when the sender may not act on the request.
	MsgForbidden = "forbidden"

	// MsgAlreadyGranted is returned for a second grant on one request.
	MsgAlreadyGranted = "consent already granted"

	// MsgInvalidTransition is returned when the request status does not allow
	// the transaction.
	MsgInvalidTransition = "invalid request status transition"

	// MsgNotFound is returned when the registration, request or grant does
	// not exist.
	MsgNotFound = "not found"
)
