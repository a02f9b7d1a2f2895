package store

import (
	"context"

	"github.com/autodiag/autodiag/pkg/models"
)

// Disabled is the Store used when DATABASE_URL is not configured. Every
// operation reports ErrUnavailable so callers take their degraded paths.
type Disabled struct{}

func (Disabled) Ping(ctx context.Context) error {
	return ErrUnavailable
}

func (Disabled) CreateDiagnosis(ctx context.Context, d *models.Diagnosis) error {
	return ErrUnavailable
}

func (Disabled) ListDiagnoses(ctx context.Context, limit int) ([]*models.Diagnosis, error) {
	return nil, ErrUnavailable
}

func (Disabled) ListTables(ctx context.Context, limit int) ([]string, error) {
	return nil, ErrUnavailable
}
