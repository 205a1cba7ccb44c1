package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-gene-consent/internal/utils"
)

var traceIDs = utils.NewUUIDGenerator()

// withTraceID reuses the caller's X-Trace-ID or issues a UUIDv7, echoes it
// back and attaches a child logger carrying it.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(utils.TraceIDHeader)
		if traceID == "" {
			traceID = traceIDs.Generate()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		ctx := utils.WithTraceID(r.Context(), traceID)
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(utils.TraceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
