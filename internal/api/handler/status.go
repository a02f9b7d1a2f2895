package handler

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/autodiag/autodiag/internal/api/response"
	"github.com/autodiag/autodiag/internal/store"
)

// maxReportedTables caps the table listing in the status report.
const maxReportedTables = 10

// errMsgMax caps error detail leaked into the status report.
const errMsgMax = 50

// StatusStore is the store surface the status report probes.
type StatusStore interface {
	Ping(ctx context.Context) error
	ListTables(ctx context.Context, limit int) ([]string, error)
}

// Pinger is the cache surface the status report probes. A nil Pinger
// means no cache is configured.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewStatusHandler returns an http.HandlerFunc for GET /test, an
// operational self-check covering the database and cache.
func NewStatusHandler(db StatusStore, cch Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := statusReport{
			Backend:          "✅ Running",
			Database:         "❌ Not Available",
			ConnectionStatus: "Not Connected",
			Collections:      []string{},
		}

		err := db.Ping(r.Context())
		switch {
		case errors.Is(err, store.ErrUnavailable):
			// Database not configured; defaults already say so
		case err != nil:
			report.Database = "❌ Error: " + truncateError(err)
		default:
			report.Database = "✅ Available"
			report.ConnectionStatus = "Connected"
			if tables, err := db.ListTables(r.Context(), maxReportedTables); err != nil {
				report.Database = "⚠️  Connected but Error: " + truncateError(err)
			} else {
				report.Database = "✅ Connected & Working"
				if len(tables) > 0 {
					report.Collections = tables
				}
			}
		}

		report.DatabaseURL = envMark("DATABASE_URL")
		report.DatabaseName = envMark("DATABASE_NAME")

		report.Cache = "❌ Not Configured"
		if cch != nil {
			if err := cch.Ping(r.Context()); err != nil {
				report.Cache = "❌ Error: " + truncateError(err)
			} else {
				report.Cache = "✅ Connected"
			}
		}

		response.JSON(w, report)
	}
}

type statusReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Cache            string   `json:"cache"`
}

func envMark(name string) string {
	if os.Getenv(name) != "" {
		return "✅ Set"
	}
	return "❌ Not Set"
}

func truncateError(err error) string {
	msg := err.Error()
	if runes := []rune(msg); len(runes) > errMsgMax {
		return string(runes[:errMsgMax])
	}
	return msg
}
