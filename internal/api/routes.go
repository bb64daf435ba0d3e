package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	if s.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Post("/problems/{id}/open", s.handleOpenProblem)

		r.Get("/attempt", s.handleGetAttempt)
		r.Delete("/attempt", s.handleAbandon)
		r.Put("/attempt/code", s.handleSetCode)
		r.Post("/attempt/select/{index}", s.handleSelectCase)
		r.Post("/attempt/submit", s.handleSubmit)
		r.Post("/attempt/reset", s.handleResetCode)
		r.Post("/attempt/next", s.handleNext)

		r.Get("/history", s.handleHistory)
		r.Get("/history/summary", s.handleHistorySummary)
	})
	return r
}
