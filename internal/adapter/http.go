package adapter

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-gene-consent/internal/utils"
)

var (
	errEmptyAddress      = errors.New("remote address is empty")
	errUnsupportedScheme = errors.New("remote address scheme must be http or https")
	errMissingHost       = errors.New("remote address has no host")
)

// newClient builds the resty client every remote (ledger, engine, blob
// store) is reached through.
func newClient(address string, timeout time.Duration) (*utils.HTTPClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("remote %q: %w", address, err)
	}
	return utils.NewHTTPClient(baseURL, timeout), nil
}

// normalizeBaseURL accepts "host:port" as well as full URLs, defaulting to
// http, and strips the trailing slash so route paths can be appended.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errEmptyAddress
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return "", errUnsupportedScheme
	case u.Host == "":
		return "", errMissingHost
	}

	u.RawQuery, u.Fragment = "", ""
	return strings.TrimRight(u.String(), "/"), nil
}
