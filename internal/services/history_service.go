package services

import (
	"context"
	"strings"

	"github.com/vytor/codedrill/internal/errors"
	"github.com/vytor/codedrill/internal/logger"
	"github.com/vytor/codedrill/internal/models"
	"github.com/vytor/codedrill/internal/repository"
)

const maxHistoryPage = 200

// HistoryService handles solve history business logic
type HistoryService interface {
	SaveSolve(ctx context.Context, rec models.SolveRecord) error
	ListSolves(ctx context.Context, filter models.SolveFilter) ([]models.SolveRecord, int, error)
	Summary(ctx context.Context, userID string) (*models.SolveSummary, error)
}

type historyService struct {
	solveRepo repository.SolveRepository
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(solveRepo repository.SolveRepository) HistoryService {
	return &historyService{solveRepo: solveRepo}
}

func (s *historyService) SaveSolve(ctx context.Context, rec models.SolveRecord) error {
	log := logger.FromContext(ctx)
	log.Debug("saving solve: id=%s, user=%s, problem=%s", rec.ID, rec.UserID, rec.ProblemID)

	if rec.ID == "" {
		return errors.NewValidationError("id", "cannot be empty")
	}
	if rec.UserID == "" {
		return errors.NewValidationError("user_id", "cannot be empty")
	}

	if err := s.solveRepo.Insert(ctx, rec); err != nil {
		log.Error("failed to save solve: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("solve saved: problem=%s rank=%s time=%dms", rec.ProblemID, rec.Rank, rec.TimeTakenMs)
	return nil
}

func (s *historyService) ListSolves(ctx context.Context, filter models.SolveFilter) ([]models.SolveRecord, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing solves: user=%s, difficulty=%s, rank=%s", filter.UserID, filter.Difficulty, filter.Rank)

	if err := validateSolveFilter(&filter); err != nil {
		return nil, 0, err
	}

	solves, err := s.solveRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list solves: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.solveRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count solves: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return solves, total, nil
}

func (s *historyService) Summary(ctx context.Context, userID string) (*models.SolveSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("summarising solves: user=%s", userID)

	if userID == "" {
		return nil, errors.NewValidationError("user_id", "cannot be empty")
	}
	summary, err := s.solveRepo.Summary(ctx, userID)
	if err != nil {
		log.Error("failed to summarise solves: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return summary, nil
}

func validateSolveFilter(f *models.SolveFilter) error {
	if f.UserID == "" {
		return errors.NewValidationError("user_id", "cannot be empty")
	}
	if f.Difficulty != "" {
		f.Difficulty = f.Difficulty.Normalize()
		if !f.Difficulty.Known() {
			return errors.NewValidationError("difficulty", "must be easy, medium or hard")
		}
	}
	if f.Rank != "" {
		f.Rank = models.Rank(strings.ToUpper(string(f.Rank)))
		switch f.Rank {
		case models.RankS, models.RankA, models.RankB, models.RankC:
		default:
			return errors.NewValidationError("rank", "must be one of S, A, B, C")
		}
	}
	if f.Limit < 0 || f.Limit > maxHistoryPage {
		return errors.NewValidationError("limit", "must be between 0 and 200")
	}
	if f.Offset < 0 {
		return errors.NewValidationError("offset", "cannot be negative")
	}
	return nil
}
