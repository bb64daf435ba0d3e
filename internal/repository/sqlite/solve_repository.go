package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/codedrill/internal/logger"
	"github.com/vytor/codedrill/internal/models"
	"github.com/vytor/codedrill/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type solveRepository struct {
	db *sql.DB
}

// NewSolveRepository creates a new SolveRepository implementation
func NewSolveRepository(db *sql.DB) repository.SolveRepository {
	return &solveRepository{db: db}
}

func (r *solveRepository) Insert(ctx context.Context, rec models.SolveRecord) error {
	log := logger.FromContext(ctx).WithPrefix("solve_repo")
	log.Debug("inserting solve: id=%s, user=%s, problem=%s, rank=%s", rec.ID, rec.UserID, rec.ProblemID, rec.Rank)

	query := sqlBuilder.Insert("solves").
		Columns("id", "user_id", "problem_id", "title", "difficulty", "rank", "time_taken_ms", "runtime_ms", "memory_used", "solved_at").
		Values(rec.ID, rec.UserID, string(rec.ProblemID), rec.Title, string(rec.Difficulty.Normalize()), string(rec.Rank),
			rec.TimeTakenMs, rec.RuntimeMs, rec.MemoryUsed, rec.SolvedAt.UTC()).
		Suffix("ON CONFLICT(id) DO NOTHING")

	q, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		log.Error("failed to insert solve: %v", err)
		return err
	}
	return nil
}

func applySolveFilter(query squirrel.SelectBuilder, filter models.SolveFilter) squirrel.SelectBuilder {
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": string(filter.Difficulty.Normalize())})
	}
	if filter.Rank != "" {
		query = query.Where(squirrel.Eq{"rank": string(filter.Rank)})
	}
	return query
}

func (r *solveRepository) List(ctx context.Context, filter models.SolveFilter) ([]models.SolveRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("solve_repo")
	log.Debug("listing solves with filter: user=%s, difficulty=%s, rank=%s", filter.UserID, filter.Difficulty, filter.Rank)

	query := sqlBuilder.Select(
		"id", "user_id", "problem_id", "title", "difficulty", "rank",
		"time_taken_ms", "runtime_ms", "memory_used", "solved_at",
	).From("solves")
	query = applySolveFilter(query, filter).OrderBy("solved_at DESC", "id")

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	q, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("failed to list solves: %v", err)
		return nil, err
	}
	defer rows.Close()

	solves := []models.SolveRecord{}
	for rows.Next() {
		var rec models.SolveRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ProblemID, &rec.Title, &rec.Difficulty, &rec.Rank,
			&rec.TimeTakenMs, &rec.RuntimeMs, &rec.MemoryUsed, &rec.SolvedAt); err != nil {
			log.Error("failed to scan solve row: %v", err)
			return nil, err
		}
		solves = append(solves, rec)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating solve rows: %v", err)
		return nil, err
	}
	log.Debug("found %d solves", len(solves))
	return solves, nil
}

func (r *solveRepository) Count(ctx context.Context, filter models.SolveFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("solve_repo")

	q, args, err := applySolveFilter(sqlBuilder.Select("COUNT(*)").From("solves"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		log.Error("failed to count solves: %v", err)
		return 0, err
	}
	return n, nil
}

func (r *solveRepository) Summary(ctx context.Context, userID string) (*models.SolveSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("solve_repo")
	log.Debug("summarising solves: user=%s", userID)

	summary := &models.SolveSummary{
		ByRank:     map[models.Rank]int{},
		BestTimeMs: map[models.Difficulty]int64{},
	}

	q, args, err := sqlBuilder.Select("rank", "COUNT(*)").
		From("solves").
		Where(squirrel.Eq{"user_id": userID}).
		GroupBy("rank").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("failed to count solves by rank: %v", err)
		return nil, err
	}
	for rows.Next() {
		var rk models.Rank
		var n int
		if err := rows.Scan(&rk, &n); err != nil {
			rows.Close()
			return nil, err
		}
		summary.ByRank[rk] = n
		summary.Total += n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	q, args, err = sqlBuilder.Select("difficulty", "best_time_ms").
		From("best_solves").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err = r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("failed to load best times: %v", err)
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d models.Difficulty
		var best int64
		if err := rows.Scan(&d, &best); err != nil {
			return nil, err
		}
		summary.BestTimeMs[d] = best
	}
	return summary, rows.Err()
}
