package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vytor/codedrill/internal/models"
)

const metricsNamespace = "codedrill"

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeNotFound  = "not_found"
	OutcomeFailed    = "failed"
	OutcomeStale     = "stale"
	OutcomePassed    = "passed"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport_error"
	OutcomeAuth      = "auth_required"
	OutcomeBusy      = "in_flight"
)

var (
	// 10s -> ~85min
	solveTimeBuckets = prometheus.ExponentialBuckets(10, 2, 10)

	ProblemLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "problem_loads_total",
		Help:      "Problem loads by outcome",
	}, []string{"outcome"})

	Submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "submissions_total",
		Help:      "Submissions by outcome",
	}, []string{"outcome"})

	Ranks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "ranks_total",
		Help:      "Ranks awarded on passing attempts",
	}, []string{"difficulty", "rank"})

	SolveTime = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "solve_time_seconds",
		Help:      "Frozen attempt time of passing attempts",
		Buckets:   solveTimeBuckets,
	}, []string{"difficulty"})

	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "active_sessions",
		Help:      "Attempt sessions currently held in memory",
	})
)

// Register adds all collectors to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{ProblemLoads, Submissions, Ranks, SolveTime, ActiveSessions} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveSolve records a passing attempt.
func ObserveSolve(d models.Difficulty, r models.Rank, elapsed time.Duration) {
	tier := string(d.Normalize())
	if !d.Known() {
		tier = "other"
	}
	Ranks.WithLabelValues(tier, string(r)).Inc()
	SolveTime.WithLabelValues(tier).Observe(elapsed.Seconds())
}
