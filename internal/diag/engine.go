// Package diag implements the fault-code knowledge base and the scoring
// engine behind the diagnose endpoint.
package diag

import (
	"math"
	"sort"
	"strings"

	"github.com/autodiag/autodiag/pkg/models"
)

// maxSuggestions caps the ranked list returned to clients.
const maxSuggestions = 5

// Engine scores diagnose requests against a fixed knowledge base. It is
// stateless apart from the tables and safe for concurrent use.
type Engine struct {
	kb KnowledgeBase
}

// NewEngine returns an engine over kb. The knowledge base is treated as
// immutable from here on; Diagnose never modifies it.
func NewEngine(kb KnowledgeBase) *Engine {
	return &Engine{kb: kb}
}

// Diagnose ranks probable parts for a fault code and free-text symptom
// description. Returns at most five suggestions sorted by likelihood
// descending, ties kept in seeding order. Never returns an empty slice:
// when no fault-code rule matches (or no code was given) the fallback
// candidates seed the pool.
func (e *Engine) Diagnose(faultCode, description string) []models.Suggestion {
	prefix := NormalizeFaultCode(faultCode)

	// Seed candidates as copies so boosts never leak into the tables.
	var pool []Candidate
	if prefix != "" {
		for _, rule := range e.kb.FaultCodes {
			if strings.HasPrefix(prefix, rule.Prefix) {
				pool = append(pool, rule.Candidates...)
			}
		}
	}
	if len(pool) == 0 {
		pool = append(pool, e.kb.Fallback...)
	}

	desc := strings.ToLower(description)
	for _, hint := range e.kb.Keywords {
		if !containsAny(desc, hint.Keywords) {
			continue
		}
		target := firstWord(strings.ToLower(hint.Part))
		for i := range pool {
			if strings.HasPrefix(strings.ToLower(pool[i].Part), target) {
				pool[i].Base += hint.Boost
			}
		}
	}

	var total float64
	for _, c := range pool {
		total += clamp01(c.Base)
	}
	if total == 0 {
		total = 1.0
	}

	var suffix string
	if prefix != "" {
		suffix = " (matched " + prefix + ")"
	}

	ranked := make([]models.Suggestion, 0, len(pool))
	for _, c := range pool {
		ranked = append(ranked, models.Suggestion{
			Part:       c.Part,
			Likelihood: round3(clamp01(c.Base) / total),
			Reason:     c.Reason + suffix,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Likelihood > ranked[j].Likelihood
	})
	if len(ranked) > maxSuggestions {
		ranked = ranked[:maxSuggestions]
	}
	return ranked
}

// NormalizeFaultCode trims, uppercases and truncates a fault code to its
// first four characters (rune-aware), so P0300 through P0306 all collapse
// into the P030 family. Returns "" for an empty or whitespace-only code,
// meaning no prefix.
func NormalizeFaultCode(code string) string {
	clean := strings.ToUpper(strings.TrimSpace(code))
	runes := []rune(clean)
	if len(runes) > 4 {
		runes = runes[:4]
	}
	return string(runes)
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// firstWord returns the first whitespace-delimited word of s, or "" when s
// is blank.
func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func clamp01(x float64) float64 {
	return math.Max(0.0, math.Min(1.0, x))
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
