package store

import (
	"context"
	"errors"

	"github.com/autodiag/autodiag/pkg/models"
)

// ErrUnavailable is returned by every operation when no database is
// configured or the store cannot be reached.
var ErrUnavailable = errors.New("store not available")

var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All database operations go through here.
// Callers treat any error as a degraded-mode signal, never a request failure:
// diagnoses are still served when the store is down.
type Store interface {
	Ping(ctx context.Context) error
	CreateDiagnosis(ctx context.Context, d *models.Diagnosis) error
	ListDiagnoses(ctx context.Context, limit int) ([]*models.Diagnosis, error)
	ListTables(ctx context.Context, limit int) ([]string, error)
}
