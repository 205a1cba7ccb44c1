package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-gene-consent/internal/app"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusBadGateway:
		return fmt.Errorf("%w: %w: %s", ErrServiceUnavailable, ErrBadGateway, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %w: %s", ErrServiceUnavailable, ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		if resp.StatusCode() >= http.StatusInternalServerError || resp.StatusCode() == http.StatusTooManyRequests {
			return fmt.Errorf("%w: http %d: %s", ErrServiceUnavailable, resp.StatusCode(), body)
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

// ledgerErrorsByMessage inverts the ledger server's error bodies.
var ledgerErrorsByMessage = map[string]error{
	app.MsgTransactionRejected: ledger.ErrLedgerRejected,
	app.MsgInvalidSignature:    ledger.ErrInvalidSignature,
	app.MsgSignerBound:         errors.Join(ledger.ErrInvalidSignature, ledger.ErrSignerBound),
	app.MsgAlreadyRegistered:   ledger.ErrAlreadyRegistered,
	app.MsgUnknownTarget:       ledger.ErrUnknownTarget,
	app.MsgSelfRequest:         ledger.ErrSelfRequest,
	app.MsgForbidden:           ledger.ErrForbidden,
	app.MsgAlreadyGranted:      ledger.ErrAlreadyGranted,
	app.MsgInvalidTransition:   ledger.ErrInvalidTransition,
	app.MsgNotFound:            ledger.ErrNotFound,
	app.MsgLedgerUnavailable:   ledger.ErrLedgerUnavailable,
}

// mapLedgerError turns a non-2xx ledger answer into the matching ledger
// error. 5xx and 429 are ErrLedgerUnavailable whatever the body says.
func mapLedgerError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if code >= http.StatusInternalServerError || code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: http %d: %s", ledger.ErrLedgerUnavailable, code, body)
	}

	if reason, ok := ledgerErrorsByMessage[body]; ok {
		return reason
	}
	return mapHTTPError(resp)
}

// asRejection marks a non-transient submit failure as a ledger rejection.
func asRejection(err error) error {
	if errors.Is(err, ledger.ErrLedgerUnavailable) || errors.Is(err, ledger.ErrLedgerRejected) {
		return err
	}
	return errors.Join(ledger.ErrLedgerRejected, err)
}
