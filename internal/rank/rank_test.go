package rank_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/codedrill/internal/models"
	"github.com/vytor/codedrill/internal/rank"
)

func TestFromMillis_Table(t *testing.T) {
	tests := []struct {
		name       string
		ms         int64
		difficulty models.Difficulty
		want       models.Rank
	}{
		{"easy fast", 45_000, models.DifficultyEasy, models.RankS},
		{"easy on S bound", 60_000, models.DifficultyEasy, models.RankS},
		{"easy just past S", 60_001, models.DifficultyEasy, models.RankA},
		{"easy on A bound", 180_000, models.DifficultyEasy, models.RankA},
		{"easy B", 250_000, models.DifficultyEasy, models.RankB},
		{"easy slow", 300_001, models.DifficultyEasy, models.RankC},
		{"medium S", 119_999, models.DifficultyMedium, models.RankS},
		{"medium A", 200_000, models.DifficultyMedium, models.RankA},
		{"medium on B bound", 420_000, models.DifficultyMedium, models.RankB},
		{"medium C", 500_000, models.DifficultyMedium, models.RankC},
		{"hard S", 299_000, models.DifficultyHard, models.RankS},
		{"hard A", 600_000, models.DifficultyHard, models.RankA},
		{"hard B", 899_999, models.DifficultyHard, models.RankB},
		{"hard C", 3_600_000, models.DifficultyHard, models.RankC},
		{"mixed case tier", 10_000, models.Difficulty("HARD"), models.RankS},
		{"unknown tier fast", 1, models.Difficulty("expert"), models.RankB},
		{"unknown tier slow", 10_000_000, models.Difficulty(""), models.RankB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rank.FromMillis(tt.ms, tt.difficulty))
		})
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, models.RankA, rank.Calculate(3*time.Minute, models.DifficultyMedium))
	}
}

func TestCalculate_MonotonicInTime(t *testing.T) {
	order := map[models.Rank]int{models.RankS: 0, models.RankA: 1, models.RankB: 2, models.RankC: 3}
	for _, d := range []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard} {
		prev := models.RankS
		for ms := int64(0); ms <= 1_000_000; ms += 5_000 {
			got := rank.FromMillis(ms, d)
			assert.GreaterOrEqual(t, order[got], order[prev], "rank must not improve as time grows (%s, %dms)", d, ms)
			prev = got
		}
	}
}

func TestFor(t *testing.T) {
	th, ok := rank.For(models.DifficultyMedium)
	require.True(t, ok)
	assert.Equal(t, 2*time.Minute, th.S)
	assert.Equal(t, 7*time.Minute, th.B)

	_, ok = rank.For("legendary")
	assert.False(t, ok)
}
