package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/autodiag/autodiag/pkg/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// CreateDiagnosis inserts one diagnosis record. Suggestions are stored as a
// JSONB document and CreatedAt is assigned by the database and written back
// onto d.
func (s *PostgresStore) CreateDiagnosis(ctx context.Context, d *models.Diagnosis) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO diagnoses (id, name, model, fault_code, description, suggestions)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		d.ID, d.Name, d.Model, d.FaultCode, d.Description, d.Suggestions,
	).Scan(&d.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create diagnosis: %w", err)
	}
	return nil
}

// ListDiagnoses returns up to limit records, newest first.
func (s *PostgresStore) ListDiagnoses(ctx context.Context, limit int) ([]*models.Diagnosis, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, model, fault_code, description, suggestions, created_at
		 FROM diagnoses ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list diagnoses: %w", err)
	}
	defer rows.Close()

	var items []*models.Diagnosis
	for rows.Next() {
		var d models.Diagnosis
		if err := rows.Scan(&d.ID, &d.Name, &d.Model, &d.FaultCode, &d.Description,
			&d.Suggestions, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan diagnosis: %w", err)
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}

// ListTables returns up to limit public-schema table names, alphabetically.
// Backs the operational status report.
func (s *PostgresStore) ListTables(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		 ORDER BY table_name LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
