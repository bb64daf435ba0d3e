package judge

import (
	"context"

	"github.com/vytor/codedrill/internal/models"
)

// ClientInterface is the backend boundary consumed by the attempt engine.
type ClientInterface interface {
	FetchProblem(ctx context.Context, token string, id models.ProblemID) (*models.Problem, error)
	Submit(ctx context.Context, token string, sub models.Submission) (*models.JudgeResult, error)
}

var _ ClientInterface = (*Client)(nil)
