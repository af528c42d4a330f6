// Package ledger holds one account's balance together with its append-only
// transaction log. The two are never mutated independently: Append applies
// the signed balance effect of a transaction and records it in a single
// step, so the balance always equals the opening balance plus the net of
// the log.
package ledger

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/zeus-fintech/zeus-api/internal/domain"
)

type Ledger struct {
	mu      sync.Mutex
	opening decimal.Decimal
	balance decimal.Decimal
	log     []domain.Transaction
	refs    map[string]struct{}
	nextID  int64
}

func New(opening decimal.Decimal) *Ledger {
	return &Ledger{
		opening: opening,
		balance: opening,
		refs:    make(map[string]struct{}),
		nextID:  1,
	}
}

// Append assigns the next id, applies the transaction's balance effect and
// records it, all-or-nothing. A sent transaction debits; received and
// deposit credit. It fails on a duplicate reference
// (domain.ErrDuplicateTransaction) or a debit that would take the balance
// negative (domain.ErrInsufficientFunds); neither case changes any state.
func (l *Ledger) Append(tx domain.Transaction) (domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tx.Reference == "" {
		return domain.Transaction{}, fmt.Errorf("ledger.Append: reference: %w", domain.ErrMissingField)
	}
	if _, exists := l.refs[tx.Reference]; exists {
		return domain.Transaction{}, fmt.Errorf("ledger.Append: reference %s: %w", tx.Reference, domain.ErrDuplicateTransaction)
	}
	if !tx.Kind.IsValid() {
		return domain.Transaction{}, fmt.Errorf("ledger.Append: kind %q: %w", tx.Kind, domain.ErrInvalidRequest)
	}
	if !tx.Amount.IsPositive() {
		return domain.Transaction{}, fmt.Errorf("ledger.Append: %w", domain.ErrInvalidAmount)
	}

	next := l.balance
	if tx.Kind.IsCredit() {
		next = next.Add(tx.Amount)
	} else {
		next = next.Sub(tx.Amount)
		if next.IsNegative() {
			return domain.Transaction{}, fmt.Errorf("ledger.Append: %w", domain.ErrInsufficientFunds)
		}
	}

	tx.ID = l.nextID
	l.nextID++
	l.refs[tx.Reference] = struct{}{}
	l.balance = next
	l.log = append(l.log, tx)

	return tx, nil
}

func (l *Ledger) Balance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// Opening returns the balance the ledger started with, before any entries.
func (l *Ledger) Opening() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.opening
}

// Transactions returns a copy of the log, most recent first. The underlying
// log keeps insertion order; ids increase with insertion.
func (l *Ledger) Transactions() []domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Transaction, len(l.log))
	for i, tx := range l.log {
		out[len(l.log)-1-i] = tx
	}
	return out
}

// Find looks a transaction up by its reference token.
func (l *Ledger) Find(reference string) (domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, tx := range l.log {
		if tx.Reference == reference {
			return tx, nil
		}
	}
	return domain.Transaction{}, fmt.Errorf("ledger.Find: %s: %w", reference, domain.ErrNotFound)
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.log)
}
