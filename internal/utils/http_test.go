package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{name: "object", data: map[string]string{"key": "value"}, status: http.StatusOK, wantBody: `{"key":"value"}`},
		{name: "custom status", data: map[string]int{"seq": 3}, status: http.StatusCreated, wantBody: `{"seq":3}`},
		{name: "nil", data: nil, status: http.StatusOK, wantBody: `null`},
		{name: "empty slice", data: []int{}, status: http.StatusOK, wantBody: `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestWriteJSON_Unmarshalable(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteJSON(w, make(chan int), http.StatusOK)

	assert.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEqual(t, "application/json", w.Header().Get("Content-Type"))
}

type payload struct {
	Kind string `json:"kind"`
	Seq  int    `json:"seq"`
}

func decode(body string) (payload, error) {
	var p payload
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	err := DecodeJSON(httptest.NewRecorder(), r, &p)
	return p, err
}

func TestDecodeJSON(t *testing.T) {
	p, err := decode(`{"kind":"register","seq":2}`)
	require.NoError(t, err)
	assert.Equal(t, payload{Kind: "register", Seq: 2}, p)

	_, err = decode(`{"kind":"register"} `)
	assert.NoError(t, err, "trailing whitespace is fine")
}

func TestDecodeJSON_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"kind":`},
		{name: "empty", body: ``},
		{name: "unknown field", body: `{"kind":"register","extra":1}`},
		{name: "wrong type", body: `{"seq":"two"}`},
		{name: "oversized", body: `{"kind":"` + strings.Repeat("a", MaxJSONBody) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(tt.body)
			assert.Error(t, err)
		})
	}

	_, err := decode(`{"kind":"a"}{"kind":"b"}`)
	assert.ErrorIs(t, err, ErrTrailingData)
}
