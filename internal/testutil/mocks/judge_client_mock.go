package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/codedrill/internal/models"
)

// MockJudgeClient is a mock implementation of judge.ClientInterface
type MockJudgeClient struct {
	mock.Mock
}

func (m *MockJudgeClient) FetchProblem(ctx context.Context, token string, id models.ProblemID) (*models.Problem, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Problem), args.Error(1)
}

func (m *MockJudgeClient) Submit(ctx context.Context, token string, sub models.Submission) (*models.JudgeResult, error) {
	args := m.Called(ctx, token, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JudgeResult), args.Error(1)
}
