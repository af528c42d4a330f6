// Package store is the in-memory session and account registry. Nothing here
// survives a restart; a session exists from login to logout and owns exactly
// one ledger-backed account.
package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zeus-fintech/zeus-api/internal/domain"
	"github.com/zeus-fintech/zeus-api/internal/ledger"
)

// Account pairs a session with its ledger.
type Account struct {
	Session *domain.Session
	Ledger  *ledger.Ledger
}

type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*Account
	opening  decimal.Decimal
}

// New creates a registry whose accounts display the given balance after
// demo-history seeding.
func New(opening decimal.Decimal) *Store {
	return &Store{
		accounts: make(map[uuid.UUID]*Account),
		opening:  opening,
	}
}

// Create opens a session at the email-verification stage and seeds its
// account with the demo transaction history.
func (s *Store) Create(email string) (*Account, error) {
	sess := domain.NewSession(email)

	led, err := seededLedger(s.opening, email)
	if err != nil {
		return nil, fmt.Errorf("store.Create: %w", err)
	}

	acct := &Account{Session: sess, Ledger: led}

	s.mu.Lock()
	s.accounts[sess.ID] = acct
	s.mu.Unlock()

	return acct, nil
}

func (s *Store) Get(id uuid.UUID) (*Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[id]
	return acct, ok
}

// Delete destroys the session and everything it owned.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.accounts, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
