package rank

import (
	"time"

	"github.com/vytor/codedrill/internal/models"
)

// Thresholds holds the bucket bounds for one difficulty tier. A solve time
// on a bound belongs to the faster bucket; anything past B is C.
type Thresholds struct {
	S time.Duration `json:"s"`
	A time.Duration `json:"a"`
	B time.Duration `json:"b"`
}

var table = map[models.Difficulty]Thresholds{
	models.DifficultyEasy:   {S: 60 * time.Second, A: 180 * time.Second, B: 300 * time.Second},
	models.DifficultyMedium: {S: 120 * time.Second, A: 240 * time.Second, B: 420 * time.Second},
	models.DifficultyHard:   {S: 300 * time.Second, A: 600 * time.Second, B: 900 * time.Second},
}

// For returns the threshold row for d. ok is false for unrecognised tiers.
func For(d models.Difficulty) (Thresholds, bool) {
	t, ok := table[d.Normalize()]
	return t, ok
}

// Calculate maps a solve time and difficulty to a rank letter.
// Unrecognised difficulties always rank B.
func Calculate(elapsed time.Duration, d models.Difficulty) models.Rank {
	t, ok := For(d)
	if !ok {
		return models.RankB
	}
	switch {
	case elapsed <= t.S:
		return models.RankS
	case elapsed <= t.A:
		return models.RankA
	case elapsed <= t.B:
		return models.RankB
	default:
		return models.RankC
	}
}

// FromMillis is Calculate for a millisecond count.
func FromMillis(ms int64, d models.Difficulty) models.Rank {
	return Calculate(time.Duration(ms)*time.Millisecond, d)
}
