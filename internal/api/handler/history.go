package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/autodiag/autodiag/internal/api/response"
	"github.com/autodiag/autodiag/pkg/models"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// DiagnosisLister reads back persisted diagnoses, newest first.
type DiagnosisLister interface {
	ListDiagnoses(ctx context.Context, limit int) ([]*models.Diagnosis, error)
}

// NewHistoryHandler returns an http.HandlerFunc for GET /api/history.
// A store failure yields an empty list, not an error.
func NewHistoryHandler(db DiagnosisLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultHistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "limit must be an integer", nil)
				return
			}
			limit = n
		}
		if limit <= 0 {
			limit = defaultHistoryLimit
		}
		if limit > maxHistoryLimit {
			limit = maxHistoryLimit
		}

		items, err := db.ListDiagnoses(r.Context(), limit)
		if err != nil {
			slog.Warn("history unavailable", "error", err)
			items = nil
		}
		if items == nil {
			items = []*models.Diagnosis{}
		}

		response.JSON(w, historyResponse{Items: items})
	}
}

type historyResponse struct {
	Items []*models.Diagnosis `json:"items"`
}
