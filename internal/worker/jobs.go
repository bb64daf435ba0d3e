package worker

import (
	"context"
	"time"

	"github.com/vytor/codedrill/internal/logger"
	"github.com/vytor/codedrill/internal/models"
)

const (
	recordAttempts = 3
	recordBackoff  = 200 * time.Millisecond
)

// RecordSolveJob persists one solve record, retrying transient failures.
type RecordSolveJob struct {
	History SolveHistoryInterface
	Record  models.SolveRecord
	Backoff time.Duration
}

func (j *RecordSolveJob) Name() string { return "record_solve" }

func (j *RecordSolveJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"solve_id":   j.Record.ID,
		"problem_id": j.Record.ProblemID,
	})

	backoff := j.Backoff
	if backoff <= 0 {
		backoff = recordBackoff
	}

	var err error
	for attempt := 1; attempt <= recordAttempts; attempt++ {
		if err = j.History.SaveSolve(ctx, j.Record); err == nil {
			log.Debug("solve recorded on attempt %d", attempt)
			return nil
		}
		log.Warn("recording solve failed (attempt %d/%d): %v", attempt, recordAttempts, err)
		if attempt == recordAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff * time.Duration(attempt)):
		}
	}
	return err
}
