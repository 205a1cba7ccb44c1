// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-gene-consent/internal/app"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/service"
	"github.com/MKhiriev/go-gene-consent/internal/utils"
	"github.com/MKhiriev/go-gene-consent/models"
)

const defaultEventsLimit = 100

func (h *Handler) submitTx(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var signed models.SignedTx
	if err := utils.DecodeJSON(w, r, &signed); err != nil {
		log.Err(err).Str("func", "*Handler.submitTx").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	receipt, err := h.services.LedgerService.Submit(r.Context(), signed)
	if err != nil {
		writeError(w, r, "*Handler.submitTx", err)
		return
	}

	log.Debug().
		Str("kind", string(signed.Tx.Kind)).
		Str("tx_ref", receipt.TxRef).
		Int64("seq", receipt.Seq).
		Msg("transaction accepted")

	utils.WriteJSON(w, receipt, http.StatusOK)
}

func (h *Handler) getRegistration(w http.ResponseWriter, r *http.Request) {
	addr, err := models.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		writeError(w, r, "*Handler.getRegistration", err)
		return
	}

	reg, err := h.services.LedgerService.Registration(r.Context(), addr)
	if err != nil {
		writeError(w, r, "*Handler.getRegistration", err)
		return
	}

	utils.WriteJSON(w, reg, http.StatusOK)
}

func (h *Handler) getRequest(w http.ResponseWriter, r *http.Request) {
	id, err := requestIDParam(r)
	if err != nil {
		writeError(w, r, "*Handler.getRequest", err)
		return
	}

	req, err := h.services.LedgerService.Request(r.Context(), id)
	if err != nil {
		writeError(w, r, "*Handler.getRequest", err)
		return
	}

	utils.WriteJSON(w, req, http.StatusOK)
}

func (h *Handler) getGrant(w http.ResponseWriter, r *http.Request) {
	id, err := requestIDParam(r)
	if err != nil {
		writeError(w, r, "*Handler.getGrant", err)
		return
	}

	grant, err := h.services.LedgerService.Grant(r.Context(), id)
	if err != nil {
		writeError(w, r, "*Handler.getGrant", err)
		return
	}

	utils.WriteJSON(w, grant, http.StatusOK)
}

func (h *Handler) listRequestsByAddress(w http.ResponseWriter, r *http.Request) {
	addr, err := models.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		writeError(w, r, "*Handler.listRequestsByAddress", err)
		return
	}

	reqs, err := h.services.LedgerService.RequestsByAddress(r.Context(), addr)
	if err != nil {
		writeError(w, r, "*Handler.listRequestsByAddress", err)
		return
	}
	if reqs == nil {
		reqs = []models.AnalysisRequest{}
	}

	utils.WriteJSON(w, models.RequestsResponse{Requests: reqs}, http.StatusOK)
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	after, limit, err := paginationParams(r)
	if err != nil {
		writeError(w, r, "*Handler.listEvents", err)
		return
	}

	events, err := h.services.LedgerService.Events(r.Context(), after, limit)
	if err != nil {
		writeError(w, r, "*Handler.listEvents", err)
		return
	}
	if events == nil {
		events = []models.LedgerEvent{}
	}

	utils.WriteJSON(w, models.EventsResponse{Events: events}, http.StatusOK)
}

func requestIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidRequestID
	}
	return id, nil
}

// paginationParams reads after (default 0) and limit (default 100). Range
// checks are left to the validation service.
func paginationParams(r *http.Request) (int64, int, error) {
	q := r.URL.Query()

	after := int64(0)
	if raw := q.Get("after"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: after=%q", ErrInvalidPagination, raw)
		}
		after = v
	}

	limit := defaultEventsLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: limit=%q", ErrInvalidPagination, raw)
		}
		limit = v
	}

	if limit > service.MaxEventsPage {
		limit = service.MaxEventsPage
	}
	return after, limit, nil
}
