package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/codedrill/internal/attempt"
	"github.com/vytor/codedrill/internal/errors"
	"github.com/vytor/codedrill/internal/judge"
	"github.com/vytor/codedrill/internal/logger"
	"github.com/vytor/codedrill/internal/models"
)

type setCodeRequest struct {
	Code string `json:"code" validate:"max=65536"`
}

func credential(r *http.Request) (judge.Credential, error) {
	cred, ok := credentialFromContext(r.Context())
	if !ok {
		return judge.Credential{}, errors.NewAuthenticationRequiredError("missing credential")
	}
	return cred, nil
}

// session returns the caller's attempt session, creating it on first use.
func (s *Server) session(r *http.Request) (*attempt.Session, judge.Credential, error) {
	cred, err := credential(r)
	if err != nil {
		return nil, judge.Credential{}, err
	}
	return s.Sessions.Get(cred.Subject), cred, nil
}

// judgeContext detaches backend calls from the client connection; the
// judge client carries its own timeout.
func judgeContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (s *Server) respondView(w http.ResponseWriter, r *http.Request, view attempt.View, err error) {
	if err != nil {
		handleAttemptError(w, r, view, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleOpenProblem(w http.ResponseWriter, r *http.Request) {
	sess, cred, err := s.session(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		handleError(w, r, errors.NewValidationError("id", "cannot be empty"))
		return
	}
	logger.FromContext(r.Context()).Debug("opening problem %s", id)

	view, err := sess.Load(judgeContext(r), cred.Token, models.ProblemID(id))
	s.respondView(w, r, view, err)
}

func (s *Server) handleGetAttempt(w http.ResponseWriter, r *http.Request) {
	sess, _, err := s.session(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sess.View())
}

func (s *Server) handleSetCode(w http.ResponseWriter, r *http.Request) {
	sess, _, err := s.session(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req setCodeRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	err = sess.SetCode(req.Code)
	s.respondView(w, r, sess.View(), err)
}

func (s *Server) handleSelectCase(w http.ResponseWriter, r *http.Request) {
	sess, _, err := s.session(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		handleError(w, r, errors.NewValidationError("index", "must be an integer"))
		return
	}
	err = sess.Select(index)
	s.respondView(w, r, sess.View(), err)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, cred, err := s.session(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	view, err := sess.Submit(judgeContext(r), cred.Token)
	s.respondView(w, r, view, err)
}

func (s *Server) handleResetCode(w http.ResponseWriter, r *http.Request) {
	sess, _, err := s.session(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	err = sess.ResetCode()
	s.respondView(w, r, sess.View(), err)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	sess, cred, err := s.session(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	view, err := sess.Next(judgeContext(r), cred.Token)
	s.respondView(w, r, view, err)
}

// handleAbandon closes the caller's attempt, if any. The timer stops and an
// in-flight result is discarded.
func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	cred, err := credential(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if s.Sessions.Drop(cred.Subject) {
		logger.FromContext(r.Context()).Info("attempt abandoned")
	}
	w.WriteHeader(http.StatusNoContent)
}
