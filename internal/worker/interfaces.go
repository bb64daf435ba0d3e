package worker

import (
	"context"

	"github.com/vytor/codedrill/internal/models"
)

// SolveHistoryInterface is the persistence side of solve recording.
// Declared here so the worker package does not import services.
type SolveHistoryInterface interface {
	SaveSolve(ctx context.Context, rec models.SolveRecord) error
}
