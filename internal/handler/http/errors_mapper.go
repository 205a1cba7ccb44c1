package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-gene-consent/internal/app"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/service"
	"github.com/MKhiriev/go-gene-consent/models"
)

type errorResponse struct {
	status  int
	message string
}

// errorStatusMap holds the specific reasons. A rejection carries exactly one
// of them joined with ledger.ErrLedgerRejected.
var errorStatusMap = map[error]errorResponse{
	ledger.ErrInvalidSignature:  {http.StatusUnauthorized, app.MsgInvalidSignature},
	ledger.ErrForbidden:         {http.StatusForbidden, app.MsgForbidden},
	ledger.ErrNotFound:          {http.StatusNotFound, app.MsgNotFound},
	ledger.ErrAlreadyRegistered: {http.StatusConflict, app.MsgAlreadyRegistered},
	ledger.ErrAlreadyGranted:    {http.StatusConflict, app.MsgAlreadyGranted},
	ledger.ErrInvalidTransition: {http.StatusConflict, app.MsgInvalidTransition},
	ledger.ErrUnknownTarget:     {http.StatusUnprocessableEntity, app.MsgUnknownTarget},
	ledger.ErrSelfRequest:       {http.StatusUnprocessableEntity, app.MsgSelfRequest},

	service.ErrInvalidDataProvided: {http.StatusBadRequest, app.MsgInvalidDataProvided},
	models.ErrInvalidAddress:       {http.StatusBadRequest, app.MsgInvalidAddress},
	ErrInvalidRequestID:            {http.StatusBadRequest, app.MsgInvalidRequestID},
	ErrInvalidPagination:           {http.StatusBadRequest, app.MsgInvalidPagination},
}

func responseFromError(err error) errorResponse {
	// ErrSignerBound always travels with ErrInvalidSignature.
	if errors.Is(err, ledger.ErrSignerBound) {
		return errorResponse{http.StatusUnauthorized, app.MsgSignerBound}
	}
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp
		}
	}

	switch {
	case errors.Is(err, ledger.ErrLedgerRejected):
		return errorResponse{http.StatusBadRequest, app.MsgTransactionRejected}
	case errors.Is(err, ledger.ErrLedgerUnavailable):
		return errorResponse{http.StatusServiceUnavailable, app.MsgLedgerUnavailable}
	default:
		return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
	}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

// writeError logs err with the request logger and answers with the mapped
// status and message.
func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	resp := responseFromError(err)

	log := logger.FromRequest(r)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Int("status", resp.status).Msg("request failed")
	} else {
		log.Info().Err(err).Str("func", fn).Int("status", resp.status).Msg("request refused")
	}

	http.Error(w, resp.message, resp.status)
}
