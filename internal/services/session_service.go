package services

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vytor/codedrill/internal/attempt"
	"github.com/vytor/codedrill/internal/judge"
	"github.com/vytor/codedrill/internal/logger"
	"github.com/vytor/codedrill/internal/metrics"
)

type SessionConfig struct {
	Client       judge.ClientInterface
	Recorder     attempt.SolveRecorder
	MaxSessions  int
	TickInterval time.Duration
	NewTicker    attempt.TickerFunc
}

// SessionService keeps one attempt session per user. The least recently
// used session is closed when the cache is full.
type SessionService struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *attempt.Session]
	cfg   SessionConfig
	log   *logger.Logger
}

func NewSessionService(cfg SessionConfig) (*SessionService, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("session service: judge client is required")
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 256
	}
	log := logger.Default().WithPrefix("sessions")

	cache, err := lru.NewWithEvict(cfg.MaxSessions, func(userID string, s *attempt.Session) {
		log.Debug("closing session for %s", userID)
		s.Close()
		metrics.ActiveSessions.Dec()
	})
	if err != nil {
		return nil, err
	}
	return &SessionService{cache: cache, cfg: cfg, log: log}, nil
}

// Get returns the user's session, creating it on first use.
func (s *SessionService) Get(userID string) *attempt.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.cache.Get(userID); ok {
		return sess
	}

	sess := attempt.NewSession(attempt.Options{
		Client:       s.cfg.Client,
		UserID:       userID,
		TickInterval: s.cfg.TickInterval,
		NewTicker:    s.cfg.NewTicker,
		Recorder:     s.cfg.Recorder,
		Log:          s.log,
	})
	s.cache.Add(userID, sess)
	metrics.ActiveSessions.Inc()
	s.log.Info("session created for %s (%d active)", userID, s.cache.Len())
	return sess
}

// Drop closes and forgets the user's session. It reports whether one existed.
func (s *SessionService) Drop(userID string) bool {
	return s.cache.Remove(userID)
}

func (s *SessionService) Len() int {
	return s.cache.Len()
}

// Close closes every session.
func (s *SessionService) Close() {
	s.log.Info("closing %d sessions", s.cache.Len())
	s.cache.Purge()
}
