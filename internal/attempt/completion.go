package attempt

import (
	"time"

	"github.com/google/uuid"
	"github.com/vytor/codedrill/internal/models"
	"github.com/vytor/codedrill/internal/rank"
)

// Completion is created once, on the first passing result of an attempt.
type Completion struct {
	ProblemID     models.ProblemID  `json:"problem_id"`
	Difficulty    models.Difficulty `json:"difficulty"`
	FinalTime     time.Duration     `json:"-"`
	FinalTimeMs   int64             `json:"final_time_ms"`
	FinalClock    string            `json:"final_clock"`
	Rank          models.Rank       `json:"rank"`
	RuntimeMs     float64           `json:"runtime_ms"`
	MemoryUsed    float64           `json:"memory_used"`
	NextProblemID models.ProblemID  `json:"next_problem_id,omitempty"`
	HasNext       bool              `json:"has_next"`
	CompletedAt   time.Time         `json:"completed_at"`

	advancing bool
}

func newCompletion(p *models.Problem, result models.JudgeResult, frozen time.Duration, now time.Time) *Completion {
	next, ok := p.ID.Next()
	return &Completion{
		ProblemID:     p.ID,
		Difficulty:    p.Difficulty,
		FinalTime:     frozen,
		FinalTimeMs:   frozen.Milliseconds(),
		FinalClock:    FormatClock(frozen),
		Rank:          rank.Calculate(frozen, p.Difficulty),
		RuntimeMs:     result.TotalTimeTaken,
		MemoryUsed:    result.TotalMemoryUsed,
		NextProblemID: next,
		HasNext:       ok,
		CompletedAt:   now,
	}
}

func (c *Completion) record(userID, title string) models.SolveRecord {
	return models.SolveRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		ProblemID:   c.ProblemID,
		Title:       title,
		Difficulty:  c.Difficulty,
		Rank:        c.Rank,
		TimeTakenMs: c.FinalTimeMs,
		RuntimeMs:   c.RuntimeMs,
		MemoryUsed:  c.MemoryUsed,
		SolvedAt:    c.CompletedAt,
	}
}
