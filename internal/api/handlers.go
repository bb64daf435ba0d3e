package api

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vytor/codedrill/internal/services"
)

// HealthChecker reports whether a dependency is usable.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}

type Server struct {
	Sessions *services.SessionService
	History  services.HistoryService
	DB       HealthChecker
	Metrics  prometheus.Gatherer
	Now      func() time.Time

	// JWTSecret verifies bearer tokens on /api routes.
	JWTSecret []byte

	validate *validator.Validate
}

func NewServer(sessions *services.SessionService, history services.HistoryService, db HealthChecker, metrics prometheus.Gatherer, jwtSecret []byte) *Server {
	return &Server{
		Sessions:  sessions,
		History:   history,
		DB:        db,
		Metrics:   metrics,
		Now:       time.Now,
		JWTSecret: jwtSecret,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
