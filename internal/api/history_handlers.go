package api

import (
	"net/http"

	"github.com/vytor/codedrill/internal/models"
)

type historyResponse struct {
	Solves []models.SolveRecord `json:"solves"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	cred, err := credential(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		handleError(w, r, err)
		return
	}
	q := r.URL.Query()
	filter := models.SolveFilter{
		UserID:     cred.Subject,
		Difficulty: models.Difficulty(q.Get("difficulty")),
		Rank:       models.Rank(q.Get("rank")),
		Limit:      limit,
		Offset:     offset,
	}

	solves, total, err := s.History.ListSolves(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, historyResponse{Solves: solves, Total: total, Limit: limit, Offset: offset})
}

func (s *Server) handleHistorySummary(w http.ResponseWriter, r *http.Request) {
	cred, err := credential(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	summary, err := s.History.Summary(r.Context(), cred.Subject)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}
