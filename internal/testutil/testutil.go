package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/codedrill/internal/db"
	"github.com/vytor/codedrill/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), conn), "failed to apply migrations")
	return conn
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Problem returns a small valid problem with sequential test case ids.
func Problem(id models.ProblemID, d models.Difficulty) *models.Problem {
	return &models.Problem{
		ID:          id,
		Title:       "Sum of Two",
		Description: "Return a + b.",
		Boilerplate: "def solve(a, b):\n    pass\n",
		Difficulty:  d,
		TestCases: []models.TestCase{
			{ID: 1, Input: []models.KeyValue{{Key: "a", Value: models.Scalar(1)}, {Key: "b", Value: models.Scalar(4)}}, Output: models.Scalar(5)},
			{ID: 2, Input: []models.KeyValue{{Key: "a", Value: models.Scalar(2)}, {Key: "b", Value: models.Scalar(2)}}, Output: models.Scalar(4)},
		},
	}
}
