// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RequestStatus is the lifecycle state of an [AnalysisRequest].
//
//	pending --grant--> consented --result--> completed
//	pending --decline/expire--> failed
//	consented --engine error--> failed
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusConsented RequestStatus = "consented"
	StatusCompleted RequestStatus = "completed"
	StatusFailed    RequestStatus = "failed"
)

var allowedTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:   {StatusConsented, StatusFailed},
	StatusConsented: {StatusCompleted, StatusFailed},
}

// IsValid reports whether s is one of the known statuses.
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConsented, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are accepted from s.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo reports whether the state machine allows s -> next.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AnalysisRequest is a requester's ask to compare against a target's data.
// RequestID is assigned by the ledger and is globally unique.
type AnalysisRequest struct {
	RequestID     int64         `json:"request_id"`
	Requester     Address       `json:"requester"`
	Target        Address       `json:"target"`
	Status        RequestStatus `json:"status"`
	ResultRef     string        `json:"result_ref,omitempty"`
	FailureReason string        `json:"failure_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Involves reports whether addr is the requester or the target.
func (r AnalysisRequest) Involves(addr Address) bool {
	return r.Requester == addr || r.Target == addr
}

// AnalysisJob is what the external analysis engine receives once a request
// has been consented.
type AnalysisJob struct {
	RequestID int64   `json:"request_id"`
	Requester Address `json:"requester"`
	Target    Address `json:"target"`
}

// AnalysisReport is what the engine reports back. Exactly one of ResultRef
// and Error is set.
type AnalysisReport struct {
	RequestID int64  `json:"request_id"`
	ResultRef string `json:"result_ref,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Failed reports whether the engine reported a computation error.
func (r AnalysisReport) Failed() bool {
	return r.Error != ""
}
