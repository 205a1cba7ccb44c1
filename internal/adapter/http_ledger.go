// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/utils"
	"github.com/MKhiriev/go-gene-consent/models"
)

type httpLedger struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPLedger returns a [ledger.Ledger] talking to a ledger node at
// cfg.LedgerAddress.
func NewHTTPLedger(cfg config.Adapter, logger *logger.Logger) (ledger.Ledger, error) {
	client, err := newClient(cfg.LedgerAddress, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger address: %w", err)
	}

	return &httpLedger{client: client, logger: logger}, nil
}

// Submit implements [ledger.Ledger]. It POSTs signed to /api/ledger/tx.
func (h *httpLedger) Submit(ctx context.Context, signed models.SignedTx) (models.Receipt, error) {
	var receipt models.Receipt

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(signed).
		Post("/api/ledger/tx")
	if err = h.check("submit", resp, err); err != nil {
		return models.Receipt{}, asRejection(err)
	}

	if err = decode(resp, &receipt); err != nil {
		return models.Receipt{}, err
	}
	return receipt, nil
}

func (h *httpLedger) Registration(ctx context.Context, addr models.Address) (models.Registration, error) {
	var reg models.Registration

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("address", addr.Hex()).
		Get("/api/ledger/registrations/{address}")
	if err = h.check("registration", resp, err); err != nil {
		return models.Registration{}, err
	}

	if err = decode(resp, &reg); err != nil {
		return models.Registration{}, err
	}
	return reg, nil
}

func (h *httpLedger) Request(ctx context.Context, requestID int64) (models.AnalysisRequest, error) {
	var req models.AnalysisRequest

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(requestID, 10)).
		Get("/api/ledger/requests/{id}")
	if err = h.check("request", resp, err); err != nil {
		return models.AnalysisRequest{}, err
	}

	if err = decode(resp, &req); err != nil {
		return models.AnalysisRequest{}, err
	}
	return req, nil
}

func (h *httpLedger) RequestsByAddress(ctx context.Context, addr models.Address) ([]models.AnalysisRequest, error) {
	var body models.RequestsResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("address", addr.Hex()).
		Get("/api/ledger/addresses/{address}/requests")
	if err = h.check("requests by address", resp, err); err != nil {
		return nil, err
	}

	if err = decode(resp, &body); err != nil {
		return nil, err
	}
	return body.Requests, nil
}

func (h *httpLedger) Grant(ctx context.Context, requestID int64) (models.ConsentGrant, error) {
	var grant models.ConsentGrant

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(requestID, 10)).
		Get("/api/ledger/requests/{id}/grant")
	if err = h.check("grant", resp, err); err != nil {
		return models.ConsentGrant{}, err
	}

	if err = decode(resp, &grant); err != nil {
		return models.ConsentGrant{}, err
	}
	return grant, nil
}

func (h *httpLedger) Events(ctx context.Context, afterSeq int64, limit int) ([]models.LedgerEvent, error) {
	var body models.EventsResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("after", strconv.FormatInt(afterSeq, 10)).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get("/api/ledger/events")
	if err = h.check("events", resp, err); err != nil {
		return nil, err
	}

	if err = decode(resp, &body); err != nil {
		return nil, err
	}
	return body.Events, nil
}

// check folds the transport error and the status code into one ledger error.
func (h *httpLedger) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		h.logger.Err(err).Str("func", "*httpLedger.check").Str("op", op).Msg("ledger request failed")
		return fmt.Errorf("%s: %w: %w", op, ledger.ErrLedgerUnavailable, err)
	}
	if err = mapLedgerError(resp); err != nil {
		h.logger.Debug().Err(err).Str("op", op).Int("status", resp.StatusCode()).Msg("ledger answered with error")
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// decode unmarshals a 2xx body. A body the client cannot read means the
// ledger answered with something it did not promise, so it is reported as
// unavailable rather than as a rule violation.
func decode(resp *resty.Response, v any) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("%w: decode response: %w", ledger.ErrLedgerUnavailable, err)
	}
	return nil
}
