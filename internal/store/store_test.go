package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeus-fintech/zeus-api/internal/domain"
)

func TestCreate_SeedsDemoHistory(t *testing.T) {
	s := New(decimal.RequireFromString("5420.50"))

	acct, err := s.Create("demo@zeus.app")
	require.NoError(t, err)
	require.NotNil(t, acct.Session)
	require.NotNil(t, acct.Ledger)

	assert.Equal(t, "demo@zeus.app", acct.Session.Email)
	assert.Equal(t, domain.StageEmailPending, acct.Session.Stage())

	// seeded history nets to the advertised balance
	assert.True(t, acct.Ledger.Balance().Equal(decimal.RequireFromString("5420.50")),
		"balance = %s", acct.Ledger.Balance())
	require.Equal(t, 3, acct.Ledger.Len())

	txs := acct.Ledger.Transactions()
	assert.Equal(t, "TXN001250", txs[0].Reference) // newest first
	assert.Equal(t, "TXN002100", txs[1].Reference)
	assert.Equal(t, "TXN003500", txs[2].Reference)
	assert.Equal(t, domain.KindReceived, txs[0].Kind)
	assert.Equal(t, domain.KindSent, txs[1].Kind)
	assert.Equal(t, "demo@zeus.app", txs[1].From)

	// the invariant also holds over the seeds against the derived opening
	net := decimal.Zero
	for _, tx := range txs {
		if tx.Kind.IsCredit() {
			net = net.Add(tx.Amount)
		} else {
			net = net.Sub(tx.Amount)
		}
	}
	assert.True(t, acct.Ledger.Opening().Add(net).Equal(acct.Ledger.Balance()))
}

func TestSessionLifecycle(t *testing.T) {
	s := New(decimal.RequireFromString("5420.50"))

	acct, err := s.Create("demo@zeus.app")
	require.NoError(t, err)

	got, ok := s.Get(acct.Session.ID)
	require.True(t, ok)
	assert.Same(t, acct, got)
	assert.Equal(t, 1, s.Len())

	s.Delete(acct.Session.ID)
	_, ok = s.Get(acct.Session.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestCreate_AccountsAreIndependent(t *testing.T) {
	s := New(decimal.RequireFromString("5420.50"))

	a, err := s.Create("a@zeus.app")
	require.NoError(t, err)
	b, err := s.Create("b@zeus.app")
	require.NoError(t, err)

	_, err = a.Ledger.Append(domain.Transaction{
		Kind:      domain.KindDeposit,
		Amount:    decimal.RequireFromString("100.00"),
		From:      "Bank Account",
		To:        "a@zeus.app",
		Status:    domain.StatusCompleted,
		Method:    "Bank Account",
		Reference: "DEP-TEST",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, a.Ledger.Len())
	assert.Equal(t, 3, b.Ledger.Len())
	assert.True(t, b.Ledger.Balance().Equal(decimal.RequireFromString("5420.50")))
}
