package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/codedrill/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue and
// attempt.SolveRecorder
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueSolve(rec models.SolveRecord) error {
	args := m.Called(rec)
	return args.Error(0)
}

func (m *MockJobQueue) RecordSolve(ctx context.Context, rec models.SolveRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// MockSolveHistory is a mock implementation of worker.SolveHistoryInterface
type MockSolveHistory struct {
	mock.Mock
}

func (m *MockSolveHistory) SaveSolve(ctx context.Context, rec models.SolveRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
