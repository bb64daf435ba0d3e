package jobs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/codedrill/internal/attempt"
	"github.com/vytor/codedrill/internal/jobs"
	"github.com/vytor/codedrill/internal/models"
	"github.com/vytor/codedrill/internal/testutil/mocks"
	"github.com/vytor/codedrill/internal/worker"
)

var (
	_ jobs.JobQueue         = (*jobs.WorkerQueue)(nil)
	_ attempt.SolveRecorder = (*jobs.WorkerQueue)(nil)
)

func TestWorkerQueue_RecordSolvePersistsInBackground(t *testing.T) {
	rec := models.SolveRecord{ID: "s1", UserID: "u1", ProblemID: "42", Rank: models.RankA}
	history := new(mocks.MockSolveHistory)
	history.On("SaveSolve", mock.Anything, rec).Return(nil).Once()

	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	q := jobs.NewWorkerQueue(pool, history)

	require.NoError(t, q.RecordSolve(context.Background(), rec))
	pool.Stop()

	history.AssertExpectations(t)
}

func TestWorkerQueue_StoppedPoolRejects(t *testing.T) {
	history := new(mocks.MockSolveHistory)
	pool := worker.NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()

	q := jobs.NewWorkerQueue(pool, history)
	err := q.RecordSolve(context.Background(), models.SolveRecord{ID: "late"})
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
	history.AssertNotCalled(t, "SaveSolve", mock.Anything, mock.Anything)
}
