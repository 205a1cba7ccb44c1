package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Route("/api/ledger", func(r chi.Router) {
			r.Post("/tx", h.submitTx)
			r.Get("/registrations/{address}", h.getRegistration)
			r.Get("/requests/{id}", h.getRequest)
			r.Get("/requests/{id}/grant", h.getGrant)
			r.Get("/addresses/{address}/requests", h.listRequestsByAddress)
			r.Get("/events", h.listEvents)
		})

		r.Get("/api/version/", h.getServerVersion)
	})

	// promhttp negotiates its own compression
	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
