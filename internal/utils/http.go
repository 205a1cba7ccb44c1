package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxJSONBody caps a decoded request body. A signed transaction is far
// smaller; anything larger is refused before it is read.
const MaxJSONBody = 1 << 20

// ErrTrailingData is returned by DecodeJSON when the body holds more than
// one JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// WriteJSON marshals data and writes it with statusCode and an
// application/json content type. It returns the number of body bytes
// written. If data cannot be marshaled a plain 500 is written instead.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// DecodeJSON reads exactly one JSON value of at most MaxJSONBody bytes from
// the request body into v. Unknown fields are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}
