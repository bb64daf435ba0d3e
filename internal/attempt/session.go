package attempt

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/vytor/codedrill/internal/errors"
	"github.com/vytor/codedrill/internal/judge"
	"github.com/vytor/codedrill/internal/logger"
	"github.com/vytor/codedrill/internal/metrics"
	"github.com/vytor/codedrill/internal/models"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
	StatePassed  State = "passed"
)

// SolveRecorder receives a record for every passed attempt. Implementations
// must not block.
type SolveRecorder interface {
	RecordSolve(ctx context.Context, rec models.SolveRecord) error
}

type Options struct {
	Client       judge.ClientInterface
	UserID       string
	TickInterval time.Duration
	NewTicker    TickerFunc
	Recorder     SolveRecorder
	Now          func() time.Time
	Log          *logger.Logger
}

// Session owns the attempt state for one user. Every method is safe for
// concurrent use; network calls are made without holding the lock.
type Session struct {
	mu sync.Mutex

	client       judge.ClientInterface
	userID       string
	tickInterval time.Duration
	newTicker    TickerFunc
	recorder     SolveRecorder
	now          func() time.Time
	log          *logger.Logger

	inFlight *semaphore.Weighted

	gen        uint64
	requested  models.ProblemID
	state      State
	attemptID  string
	problem    *models.Problem
	code       string
	selected   int
	timer      *Timer
	result     *models.JudgeResult
	completion *Completion
	lastErr    *errors.AppError
	submitting bool
	closed     bool
}

func NewSession(opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewTicker == nil {
		opts.NewTicker = NewRealTicker
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.Log == nil {
		opts.Log = logger.Default()
	}
	return &Session{
		client:       opts.Client,
		userID:       opts.UserID,
		tickInterval: opts.TickInterval,
		newTicker:    opts.NewTicker,
		recorder:     opts.Recorder,
		now:          opts.Now,
		log:          opts.Log.WithPrefix("attempt").WithField("user", opts.UserID),
		inFlight:     semaphore.NewWeighted(1),
		state:        StateIdle,
	}
}

// Load navigates to problem id. The most recently started load wins: a
// load overtaken by a newer one returns STALE_LOAD and changes nothing.
func (s *Session) Load(ctx context.Context, token string, id models.ProblemID) (View, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return View{}, errors.NewBadRequestError("session closed")
	}
	s.gen++
	gen := s.gen
	s.requested = id
	s.state = StateLoading
	s.mu.Unlock()

	log := s.log.WithField("problem_id", id)
	log.Debug("loading problem")

	problem, err := s.client.FetchProblem(ctx, token, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || s.closed {
		log.Info("discarding load superseded by navigation to %s", s.requested)
		metrics.ProblemLoads.WithLabelValues(metrics.OutcomeStale).Inc()
		return s.viewLocked(), errors.NewStaleLoadError(id)
	}

	if err != nil {
		appErr := asAppError(err, func(e error) *errors.AppError { return errors.NewProblemLoadFailedError(id, e) })
		log.Warn("problem load failed: %v", appErr)
		if appErr.Code == errors.ErrCodeProblemNotFound {
			metrics.ProblemLoads.WithLabelValues(metrics.OutcomeNotFound).Inc()
		} else {
			metrics.ProblemLoads.WithLabelValues(metrics.OutcomeFailed).Inc()
		}
		s.discardAttemptLocked()
		s.state = StateFailed
		s.lastErr = appErr
		return s.viewLocked(), appErr
	}

	s.beginAttemptLocked(problem)
	metrics.ProblemLoads.WithLabelValues(metrics.OutcomeOK).Inc()
	log.WithField("attempt", s.attemptID).Info("attempt started: %q (%s, %d cases)", problem.Title, problem.Difficulty, len(problem.TestCases))
	return s.viewLocked(), nil
}

func (s *Session) discardAttemptLocked() {
	if s.timer != nil {
		s.timer.Close()
		s.timer = nil
	}
	s.problem = nil
	s.code = ""
	s.selected = 0
	s.result = nil
	s.completion = nil
	s.attemptID = ""
	s.lastErr = nil
}

func (s *Session) beginAttemptLocked(p *models.Problem) {
	s.discardAttemptLocked()
	s.problem = p
	s.code = p.Boilerplate
	s.attemptID = uuid.NewString()
	s.state = StateReady
	s.timer = NewTimer(s.tickInterval, s.newTicker)
	s.timer.Start()
}

// SetCode replaces the candidate code buffer.
func (s *Session) SetCode(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.code = code
	return nil
}

// ResetCode restores the problem's boilerplate into the buffer.
func (s *Session) ResetCode() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.code = s.problem.Boilerplate
	return nil
}

func (s *Session) editableLocked() error {
	if s.problem == nil {
		return errors.NewNoProblemError()
	}
	if s.completion != nil {
		return errors.NewAttemptCompletedError()
	}
	return nil
}

// Select changes which test case is displayed. It never submits.
func (s *Session) Select(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.problem == nil {
		return errors.NewNoProblemError()
	}
	if index < 0 || index >= len(s.problem.TestCases) {
		return errors.NewValidationError("index", "no test case at that position")
	}
	s.selected = index
	return nil
}

// Submit sends a snapshot of the current code to the judge. Only one
// submission per session may be outstanding; extra requests get
// SUBMISSION_IN_FLIGHT and change nothing.
func (s *Session) Submit(ctx context.Context, token string) (View, error) {
	if !s.inFlight.TryAcquire(1) {
		metrics.Submissions.WithLabelValues(metrics.OutcomeBusy).Inc()
		s.log.Debug("submission rejected: another one is in flight")
		return s.View(), errors.NewSubmissionInFlightError()
	}
	defer s.inFlight.Release(1)

	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return View{}, errors.NewBadRequestError("session closed")
	case s.state == StateLoading:
		s.mu.Unlock()
		return s.View(), errors.NewBadRequestError("problem is still loading")
	case s.problem == nil:
		s.mu.Unlock()
		return s.View(), errors.NewNoProblemError()
	case s.completion != nil:
		s.mu.Unlock()
		return s.View(), errors.NewAttemptCompletedError()
	}
	sub := models.Submission{ProblemID: s.problem.ID, Code: s.code}
	gen, attemptID := s.gen, s.attemptID
	s.submitting = true
	s.lastErr = nil
	s.mu.Unlock()

	log := s.log.WithFields(map[string]any{"problem_id": sub.ProblemID, "attempt": attemptID})
	log.Debug("dispatching submission")

	result, err := s.client.Submit(ctx, token, sub)

	s.mu.Lock()
	s.submitting = false
	if gen != s.gen || attemptID != s.attemptID || s.closed {
		s.mu.Unlock()
		log.Info("dropping judge result: attempt was replaced while judging")
		metrics.Submissions.WithLabelValues(metrics.OutcomeStale).Inc()
		return s.View(), errors.NewStaleResultError(sub.ProblemID)
	}

	if err != nil {
		appErr := asAppError(err, errors.NewTransportFailedError)
		if appErr.Code == errors.ErrCodeAuthRequired {
			metrics.Submissions.WithLabelValues(metrics.OutcomeAuth).Inc()
		} else {
			metrics.Submissions.WithLabelValues(metrics.OutcomeTransport).Inc()
		}
		s.lastErr = appErr
		view := s.viewLocked()
		s.mu.Unlock()
		log.Warn("submission failed: %v", appErr)
		return view, appErr
	}

	rec := s.applyResultLocked(*result)
	view := s.viewLocked()
	s.mu.Unlock()

	if rec != nil {
		s.publish(ctx, *rec)
	}
	return view, nil
}

// applyResultLocked reconciles a judge result into the attempt. A pass
// freezes the timer, ranks the attempt and returns the record to publish.
// Results arriving after completion are ignored.
func (s *Session) applyResultLocked(result models.JudgeResult) *models.SolveRecord {
	if s.completion != nil {
		s.log.Debug("ignoring judge result for an attempt that already passed")
		return nil
	}

	r := result.Clone()
	s.result = &r

	if !r.Passed {
		metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		s.log.Info("judge rejected submission for %s", s.problem.ID)
		return nil
	}

	frozen := s.timer.Stop()
	s.completion = newCompletion(s.problem, r, frozen, s.now())
	s.state = StatePassed

	metrics.Submissions.WithLabelValues(metrics.OutcomePassed).Inc()
	metrics.ObserveSolve(s.problem.Difficulty, s.completion.Rank, frozen)
	s.log.Info("attempt passed: problem=%s time=%s rank=%s", s.problem.ID, s.completion.FinalClock, s.completion.Rank)

	rec := s.completion.record(s.userID, s.problem.Title)
	return &rec
}

func (s *Session) publish(ctx context.Context, rec models.SolveRecord) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordSolve(ctx, rec); err != nil {
		s.log.Warn("failed to hand off solve record %s: %v", rec.ID, err)
	}
}

// Next loads the problem after the one just passed.
func (s *Session) Next(ctx context.Context, token string) (View, error) {
	s.mu.Lock()
	c := s.completion
	switch {
	case c == nil:
		s.mu.Unlock()
		return s.View(), errors.NewAttemptNotCompletedError()
	case !c.HasNext:
		s.mu.Unlock()
		return s.View(), errors.NewBadRequestError("problem ids are not sequential; pick the next problem from the list")
	case c.advancing:
		s.mu.Unlock()
		return s.View(), errors.NewBadRequestError("already moving to the next problem")
	}
	c.advancing = true
	next := c.NextProblemID
	s.mu.Unlock()

	return s.Load(ctx, token, next)
}

// Close stops the timer and invalidates any in-flight work.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.gen++
	if s.timer != nil {
		s.timer.Close()
	}
	s.log.Debug("session closed")
}

func asAppError(err error, wrap func(error) *errors.AppError) *errors.AppError {
	if appErr, ok := errors.As(err); ok {
		return appErr
	}
	return wrap(err)
}
