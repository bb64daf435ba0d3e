package jobs

import "github.com/vytor/codedrill/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueSolve(rec models.SolveRecord) error
}
