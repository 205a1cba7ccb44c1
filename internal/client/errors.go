package client

import "errors"

var (
	// ErrNoSubject is returned when neither --subject nor APP_SUBJECT_ID is set.
	ErrNoSubject = errors.New("no identity credential: set --subject or APP_SUBJECT_ID")

	// ErrRemoteNotConfigured is returned by a remote whose address is unset.
	ErrRemoteNotConfigured = errors.New("remote address is not configured")

	errInvalidReport   = errors.New("exactly one of --result-ref and --error is required")
	errInvalidMaterial = errors.New("exactly one of --material and --material-file is required")
)
