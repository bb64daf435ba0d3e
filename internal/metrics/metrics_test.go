package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/codedrill/internal/metrics"
	"github.com/vytor/codedrill/internal/models"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(reg))
	assert.Error(t, metrics.Register(reg), "double registration is rejected")
}

func TestObserveSolve_BucketsUnknownTiers(t *testing.T) {
	before := testutil.ToFloat64(metrics.Ranks.WithLabelValues("other", "B"))
	metrics.ObserveSolve(models.Difficulty("expert"), models.RankB, 3*time.Minute)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.Ranks.WithLabelValues("other", "B")))

	before = testutil.ToFloat64(metrics.Ranks.WithLabelValues("easy", "S"))
	metrics.ObserveSolve(models.Difficulty("Easy"), models.RankS, 45*time.Second)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.Ranks.WithLabelValues("easy", "S")))
}
