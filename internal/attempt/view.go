package attempt

import (
	"github.com/vytor/codedrill/internal/models"
)

type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// View is a consistent snapshot of a session, safe to hand to renderers.
type View struct {
	AttemptID     string              `json:"attempt_id,omitempty"`
	State         State               `json:"state"`
	RequestedID   models.ProblemID    `json:"requested_id,omitempty"`
	Problem       *models.Problem     `json:"problem,omitempty"`
	Code          string              `json:"code"`
	Editable      bool                `json:"editable"`
	Submitting    bool                `json:"submitting"`
	ElapsedMs     int64               `json:"elapsed_ms"`
	ElapsedClock  string              `json:"elapsed_clock"`
	Cases         []CaseView          `json:"cases"`
	SelectedIndex int                 `json:"selected_index"`
	Result        *models.JudgeResult `json:"result,omitempty"`
	Completion    *Completion         `json:"completion,omitempty"`
	Error         *ErrorView          `json:"error,omitempty"`
}

// View returns the current snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	v := View{
		AttemptID:     s.attemptID,
		State:         s.state,
		RequestedID:   s.requested,
		Code:          s.code,
		Submitting:    s.submitting,
		SelectedIndex: s.selected,
		Cases:         []CaseView{},
	}

	if s.problem != nil {
		p := *s.problem
		v.Problem = &p
		v.Editable = s.completion == nil
		v.Cases = Reconcile(p.TestCases, s.result, s.selected)
	}

	switch {
	case s.completion != nil:
		c := *s.completion
		v.Completion = &c
		v.ElapsedMs = c.FinalTimeMs
		v.ElapsedClock = c.FinalClock
	case s.timer != nil:
		el := s.timer.Elapsed()
		v.ElapsedMs = el.Milliseconds()
		v.ElapsedClock = FormatClock(el)
	default:
		v.ElapsedClock = FormatClock(0)
	}

	if s.result != nil {
		r := s.result.Clone()
		v.Result = &r
	}
	if s.lastErr != nil {
		v.Error = &ErrorView{Code: s.lastErr.Code, Message: s.lastErr.Message}
	}
	return v
}
