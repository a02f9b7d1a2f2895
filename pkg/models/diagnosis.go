// Package models contains shared data models used across the AutoDiag codebase.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Diagnosis is the persisted record of one diagnose request together with
// the suggestions returned for it. FaultCode keeps the raw client value
// (nil when the request omitted it); normalization happens only inside the
// scoring engine.
type Diagnosis struct {
	ID          uuid.UUID    `db:"id"          json:"id"`
	Name        string       `db:"name"        json:"name"`
	Model       string       `db:"model"       json:"model"`
	FaultCode   *string      `db:"fault_code"  json:"fault_code"`
	Description string       `db:"description" json:"description"`
	Suggestions []Suggestion `db:"suggestions" json:"suggestions"`
	CreatedAt   time.Time    `db:"created_at"  json:"created_at"`
}
