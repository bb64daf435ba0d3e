package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/codedrill/internal/models"
)

// MockSolveRepository is a mock implementation of repository.SolveRepository
type MockSolveRepository struct {
	mock.Mock
}

func (m *MockSolveRepository) Insert(ctx context.Context, rec models.SolveRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockSolveRepository) List(ctx context.Context, filter models.SolveFilter) ([]models.SolveRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SolveRecord), args.Error(1)
}

func (m *MockSolveRepository) Count(ctx context.Context, filter models.SolveFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockSolveRepository) Summary(ctx context.Context, userID string) (*models.SolveSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SolveSummary), args.Error(1)
}
