package attempt

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/codedrill/internal/models"
)

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

// tick delivers one tick and reports whether the timer goroutine took it.
func (f *fakeTicker) tick() bool {
	select {
	case f.ch <- time.Now():
		return true
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

type fakeTickers struct {
	mu  sync.Mutex
	all []*fakeTicker
}

func (f *fakeTickers) New(time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time)}
	f.all = append(f.all, t)
	return t
}

func (f *fakeTickers) latest(t *testing.T) *fakeTicker {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.all, "no ticker created yet")
	return f.all[len(f.all)-1]
}

func tickN(t *testing.T, ft *fakeTicker, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.True(t, ft.tick(), "tick %d was not consumed", i+1)
	}
}

type stubClient struct {
	mu          sync.Mutex
	fetch       func(ctx context.Context, token string, id models.ProblemID) (*models.Problem, error)
	submit      func(ctx context.Context, token string, sub models.Submission) (*models.JudgeResult, error)
	submissions []models.Submission
}

func (c *stubClient) FetchProblem(ctx context.Context, token string, id models.ProblemID) (*models.Problem, error) {
	if c.fetch == nil {
		return problemFixture(id, models.DifficultyEasy), nil
	}
	return c.fetch(ctx, token, id)
}

func (c *stubClient) Submit(ctx context.Context, token string, sub models.Submission) (*models.JudgeResult, error) {
	c.mu.Lock()
	c.submissions = append(c.submissions, sub)
	c.mu.Unlock()
	if c.submit == nil {
		return passingResult(sub.ProblemID), nil
	}
	return c.submit(ctx, token, sub)
}

func (c *stubClient) submitted() []models.Submission {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Submission, len(c.submissions))
	copy(out, c.submissions)
	return out
}

type recorderStub struct {
	mu      sync.Mutex
	records []models.SolveRecord
}

func (r *recorderStub) RecordSolve(_ context.Context, rec models.SolveRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *recorderStub) all() []models.SolveRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.SolveRecord(nil), r.records...)
}

func problemFixture(id models.ProblemID, d models.Difficulty) *models.Problem {
	return &models.Problem{
		ID:          id,
		Title:       "Problem " + id.String(),
		Description: "add two numbers",
		Boilerplate: "def solve(a, b):\n    pass\n",
		Difficulty:  d,
		TestCases: []models.TestCase{
			{ID: 1, Input: []models.KeyValue{{Key: "a", Value: models.Scalar(1)}, {Key: "b", Value: models.Scalar(4)}}, Output: models.Scalar(5)},
			{ID: 2, Input: []models.KeyValue{{Key: "a", Value: models.Scalar(2)}, {Key: "b", Value: models.Scalar(2)}}, Output: models.Scalar(4)},
			{ID: 3, Input: []models.KeyValue{{Key: "a", Value: models.Sequence(1, 2)}, {Key: "b", Value: models.Scalar(0)}}, Output: models.Sequence(1, 2)},
		},
	}
}

func passingResult(id models.ProblemID) *models.JudgeResult {
	return &models.JudgeResult{
		ProblemID: id,
		Passed:    true,
		Tests: []models.TestOutcome{
			{TestCaseID: 1, Passed: true, ActualOutput: "5", ExpectedOutput: "5"},
			{TestCaseID: 2, Passed: true, ActualOutput: "4", ExpectedOutput: "4"},
			{TestCaseID: 3, Passed: true, ActualOutput: "[1,2]", ExpectedOutput: "[1,2]"},
		},
		TotalTimeTaken:  12.5,
		TotalMemoryUsed: 1024,
	}
}
