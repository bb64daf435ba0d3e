package jobs

import (
	"context"

	"github.com/vytor/codedrill/internal/logger"
	"github.com/vytor/codedrill/internal/models"
	"github.com/vytor/codedrill/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	recordPool *worker.Pool
	history    worker.SolveHistoryInterface
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(recordPool *worker.Pool, history worker.SolveHistoryInterface) *WorkerQueue {
	return &WorkerQueue{
		recordPool: recordPool,
		history:    history,
	}
}

func (q *WorkerQueue) EnqueueSolve(rec models.SolveRecord) error {
	return q.recordPool.Submit(&worker.RecordSolveJob{
		History: q.history,
		Record:  rec,
	})
}

// RecordSolve hands a passed attempt to the background recorder. It never
// blocks the caller.
func (q *WorkerQueue) RecordSolve(ctx context.Context, rec models.SolveRecord) error {
	if err := q.EnqueueSolve(rec); err != nil {
		logger.FromContext(ctx).WithPrefix("jobs").Warn("solve %s not queued: %v", rec.ID, err)
		return err
	}
	return nil
}
