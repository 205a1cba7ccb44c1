package service

import "errors"

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrNotParticipant is returned when the caller is neither requester nor
	// target of the request it acts on.
	ErrNotParticipant = errors.New("caller is not a party to the request")

	// ErrNotConsented is returned by Dispatch for a request that has not
	// reached the consented state.
	ErrNotConsented = errors.New("request is not consented")

	// ErrNoResult is returned by Result while a request is not completed.
	ErrNoResult = errors.New("request has no result")

	ErrEmptyReport = errors.New("report carries neither result nor error")
)
