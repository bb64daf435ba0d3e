package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/codedrill/internal/errors"
	"github.com/vytor/codedrill/internal/models"
	"github.com/vytor/codedrill/internal/services"
	"github.com/vytor/codedrill/internal/testutil/mocks"
	"github.com/vytor/codedrill/internal/worker"
)

var _ worker.SolveHistoryInterface = services.NewHistoryService(nil)

func TestHistoryService_SaveSolve(t *testing.T) {
	repo := new(mocks.MockSolveRepository)
	svc := services.NewHistoryService(repo)
	rec := models.SolveRecord{ID: "s1", UserID: "u1", ProblemID: "42", Rank: models.RankS}
	repo.On("Insert", mock.Anything, rec).Return(nil).Once()

	require.NoError(t, svc.SaveSolve(context.Background(), rec))
	repo.AssertExpectations(t)
}

func TestHistoryService_SaveSolveErrors(t *testing.T) {
	repo := new(mocks.MockSolveRepository)
	svc := services.NewHistoryService(repo)

	err := svc.SaveSolve(context.Background(), models.SolveRecord{UserID: "u1"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	rec := models.SolveRecord{ID: "s1", UserID: "u1"}
	repo.On("Insert", mock.Anything, rec).Return(fmt.Errorf("database is locked"))
	err = svc.SaveSolve(context.Background(), rec)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
}

func TestHistoryService_ListSolvesNormalisesFilter(t *testing.T) {
	repo := new(mocks.MockSolveRepository)
	svc := services.NewHistoryService(repo)
	want := models.SolveFilter{UserID: "u1", Difficulty: models.DifficultyMedium, Rank: models.RankA, Limit: 10}
	recs := []models.SolveRecord{{ID: "s1"}}
	repo.On("List", mock.Anything, want).Return(recs, nil).Once()
	repo.On("Count", mock.Anything, want).Return(7, nil).Once()

	got, total, err := svc.ListSolves(context.Background(), models.SolveFilter{UserID: "u1", Difficulty: " Medium", Rank: "a", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, recs, got)
	assert.Equal(t, 7, total)
	repo.AssertExpectations(t)
}

func TestHistoryService_ListSolvesRejectsBadFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter models.SolveFilter
		field  string
	}{
		{"no user", models.SolveFilter{}, "user_id"},
		{"unknown difficulty", models.SolveFilter{UserID: "u", Difficulty: "insane"}, "difficulty"},
		{"unknown rank", models.SolveFilter{UserID: "u", Rank: "Z"}, "rank"},
		{"limit too large", models.SolveFilter{UserID: "u", Limit: 500}, "limit"},
		{"negative offset", models.SolveFilter{UserID: "u", Offset: -1}, "offset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockSolveRepository)
			svc := services.NewHistoryService(repo)

			_, _, err := svc.ListSolves(context.Background(), tt.filter)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
			assert.Contains(t, err.Error(), tt.field)
			repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestHistoryService_Summary(t *testing.T) {
	repo := new(mocks.MockSolveRepository)
	svc := services.NewHistoryService(repo)
	sum := &models.SolveSummary{Total: 2, ByRank: map[models.Rank]int{models.RankS: 2}}
	repo.On("Summary", mock.Anything, "u1").Return(sum, nil)

	got, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, sum, got)

	_, err = svc.Summary(context.Background(), "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}
