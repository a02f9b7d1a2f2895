package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/autodiag/autodiag/internal/api/response"
	"github.com/autodiag/autodiag/pkg/models"
	"github.com/google/uuid"
)

// Diagnoser ranks probable parts for a fault code and symptom description.
type Diagnoser interface {
	Diagnose(faultCode, description string) []models.Suggestion
}

// DiagnosisCreator persists a completed diagnosis.
type DiagnosisCreator interface {
	CreateDiagnosis(ctx context.Context, d *models.Diagnosis) error
}

// NewDiagnoseHandler returns an http.HandlerFunc for POST /api/diagnose.
// Persistence is best effort: when the store is down the response still
// carries the suggestions, with a null id.
func NewDiagnoseHandler(engine Diagnoser, db DiagnosisCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string  `json:"name"`
			Model       string  `json:"model"`
			FaultCode   *string `json:"fault_code"`
			Description string  `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if req.Name == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "name is required", nil)
			return
		}
		if req.Model == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "model is required", nil)
			return
		}
		if req.Description == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "description is required", nil)
			return
		}

		faultCode := ""
		if req.FaultCode != nil {
			faultCode = *req.FaultCode
		}
		suggestions := engine.Diagnose(faultCode, req.Description)

		d := &models.Diagnosis{
			ID:          uuid.New(),
			Name:        req.Name,
			Model:       req.Model,
			FaultCode:   req.FaultCode,
			Description: req.Description,
			Suggestions: suggestions,
		}

		var id *uuid.UUID
		if err := db.CreateDiagnosis(r.Context(), d); err != nil {
			slog.Warn("diagnosis not persisted", "error", err)
		} else {
			id = &d.ID
		}

		response.JSON(w, diagnoseResponse{
			Suggestions: suggestions,
			ID:          id,
		})
	}
}

type diagnoseResponse struct {
	Suggestions []models.Suggestion `json:"suggestions"`
	ID          *uuid.UUID          `json:"id"`
}
