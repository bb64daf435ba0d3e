package repository

import (
	"context"

	"github.com/vytor/codedrill/internal/models"
)

// SolveRepository handles solve history data access
type SolveRepository interface {
	// Insert stores rec. Inserting the same record id twice is a no-op.
	Insert(ctx context.Context, rec models.SolveRecord) error
	List(ctx context.Context, filter models.SolveFilter) ([]models.SolveRecord, error)
	Count(ctx context.Context, filter models.SolveFilter) (int, error)
	Summary(ctx context.Context, userID string) (*models.SolveSummary, error)
}
