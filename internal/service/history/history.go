// Package history filters and totals an account's transaction log. It never
// mutates the log; results preserve the order of their input.
package history

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeus-fintech/zeus-api/internal/domain"
)

// Criteria narrows a log. Zero values leave their dimension unrestricted;
// Kind and Status also accept "all" as unrestricted.
type Criteria struct {
	Search   string
	Kind     string
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Filter returns the transactions matching every set criterion, in the
// order given. Search matches case-insensitively against reference,
// counterparties and method; the date range is inclusive on both ends and
// compares civil dates only.
func Filter(txs []domain.Transaction, c Criteria) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if matches(tx, c) {
			out = append(out, tx)
		}
	}
	return out
}

func matches(tx domain.Transaction, c Criteria) bool {
	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(tx.Reference), needle) &&
			!strings.Contains(strings.ToLower(tx.From), needle) &&
			!strings.Contains(strings.ToLower(tx.To), needle) &&
			!strings.Contains(strings.ToLower(tx.Method), needle) {
			return false
		}
	}

	if c.Kind != "" && c.Kind != "all" && string(tx.Kind) != c.Kind {
		return false
	}
	if c.Status != "" && c.Status != "all" && string(tx.Status) != c.Status {
		return false
	}

	day := civilDate(tx.OccurredAt)
	if c.DateFrom != nil && day.Before(civilDate(*c.DateFrom)) {
		return false
	}
	if c.DateTo != nil && day.After(civilDate(*c.DateTo)) {
		return false
	}
	return true
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Summary totals a log: sent on one side, received and deposits on the
// other, and their net.
type Summary struct {
	TotalSent     decimal.Decimal
	TotalReceived decimal.Decimal
	Net           decimal.Decimal
	Count         int
}

func Summarize(txs []domain.Transaction) Summary {
	s := Summary{
		TotalSent:     decimal.Zero,
		TotalReceived: decimal.Zero,
		Count:         len(txs),
	}
	for _, tx := range txs {
		if tx.Kind.IsCredit() {
			s.TotalReceived = s.TotalReceived.Add(tx.Amount)
		} else {
			s.TotalSent = s.TotalSent.Add(tx.Amount)
		}
	}
	s.Net = s.TotalReceived.Sub(s.TotalSent)
	return s
}
