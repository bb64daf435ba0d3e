package models

import "time"

// SolveRecord is the persisted trace of a passed attempt.
type SolveRecord struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	ProblemID   ProblemID  `json:"problem_id"`
	Title       string     `json:"title"`
	Difficulty  Difficulty `json:"difficulty_level"`
	Rank        Rank       `json:"rank"`
	TimeTakenMs int64      `json:"time_taken"`
	RuntimeMs   float64    `json:"runtime"`
	MemoryUsed  float64    `json:"memory_used"`
	SolvedAt    time.Time  `json:"solved_at"`
}

type SolveFilter struct {
	UserID     string
	Difficulty Difficulty
	Rank       Rank
	Limit      int
	Offset     int
}

type SolveSummary struct {
	Total      int                  `json:"total"`
	ByRank     map[Rank]int         `json:"by_rank"`
	BestTimeMs map[Difficulty]int64 `json:"best_time_ms"`
}
