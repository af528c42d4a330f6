package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeus-fintech/zeus-api/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(kind domain.TransactionKind, amount, reference string) domain.Transaction {
	return domain.Transaction{
		Kind:       kind,
		Amount:     dec(amount),
		From:       "a",
		To:         "b",
		OccurredAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Status:     domain.StatusCompleted,
		Method:     "Instant Transfer",
		Reference:  reference,
	}
}

func TestAppend_BalanceInvariant(t *testing.T) {
	opening := dec("1000.00")
	l := New(opening)

	steps := []domain.Transaction{
		tx(domain.KindDeposit, "500.00", "DEP-1"),
		tx(domain.KindSent, "250.50", "TXN-1"),
		tx(domain.KindReceived, "100.00", "TXN-2"),
		tx(domain.KindSent, "0.01", "TXN-3"),
	}

	for _, step := range steps {
		_, err := l.Append(step)
		require.NoError(t, err)

		// balance == opening + credits - debits after every step
		net := decimal.Zero
		for _, got := range l.Transactions() {
			if got.Kind.IsCredit() {
				net = net.Add(got.Amount)
			} else {
				net = net.Sub(got.Amount)
			}
		}
		assert.True(t, l.Balance().Equal(opening.Add(net)),
			"balance %s != opening %s + net %s", l.Balance(), opening, net)
	}

	assert.True(t, l.Balance().Equal(dec("1349.49")))
}

func TestAppend_AtomicPairing(t *testing.T) {
	l := New(dec("100.00"))

	before := l.Balance()
	_, err := l.Append(tx(domain.KindSent, "40.00", "TXN-1"))
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
	assert.True(t, l.Balance().Equal(before.Sub(dec("40.00"))))

	// a failing append changes neither balance nor log
	_, err = l.Append(tx(domain.KindSent, "1000.00", "TXN-2"))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, 1, l.Len())
	assert.True(t, l.Balance().Equal(dec("60.00")))
}

func TestAppend_DuplicateReference(t *testing.T) {
	l := New(dec("100.00"))

	_, err := l.Append(tx(domain.KindDeposit, "10.00", "DEP-1"))
	require.NoError(t, err)

	_, err = l.Append(tx(domain.KindDeposit, "10.00", "DEP-1"))
	require.ErrorIs(t, err, domain.ErrDuplicateTransaction)
	assert.Equal(t, 1, l.Len())
	assert.True(t, l.Balance().Equal(dec("110.00")))
}

func TestAppend_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr error
	}{
		{
			name:    "missing reference",
			tx:      tx(domain.KindDeposit, "10.00", ""),
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "zero amount",
			tx:      tx(domain.KindDeposit, "0.00", "DEP-1"),
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			tx:      tx(domain.KindDeposit, "-5.00", "DEP-1"),
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "unknown kind",
			tx: func() domain.Transaction {
				x := tx(domain.KindDeposit, "10.00", "DEP-1")
				x.Kind = domain.TransactionKind("refund")
				return x
			}(),
			wantErr: domain.ErrInvalidRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := New(dec("100.00"))
			_, err := l.Append(tc.tx)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, 0, l.Len())
			assert.True(t, l.Balance().Equal(dec("100.00")))
		})
	}
}

func TestAppend_AssignsMonotonicIDs(t *testing.T) {
	l := New(dec("0.00"))

	for i := 1; i <= 5; i++ {
		got, err := l.Append(tx(domain.KindDeposit, "1.00", fmt.Sprintf("DEP-%d", i)))
		require.NoError(t, err)
		assert.Equal(t, int64(i), got.ID)
	}
}

func TestTransactions_NewestFirst(t *testing.T) {
	l := New(dec("0.00"))
	_, err := l.Append(tx(domain.KindDeposit, "1.00", "DEP-1"))
	require.NoError(t, err)
	_, err = l.Append(tx(domain.KindDeposit, "2.00", "DEP-2"))
	require.NoError(t, err)

	got := l.Transactions()
	require.Len(t, got, 2)
	assert.Equal(t, "DEP-2", got[0].Reference)
	assert.Equal(t, "DEP-1", got[1].Reference)

	// the copy does not alias the log
	got[0].Reference = "mutated"
	fresh := l.Transactions()
	assert.Equal(t, "DEP-2", fresh[0].Reference)
}

func TestFind(t *testing.T) {
	l := New(dec("0.00"))
	_, err := l.Append(tx(domain.KindDeposit, "1.00", "DEP-1"))
	require.NoError(t, err)

	got, err := l.Find("DEP-1")
	require.NoError(t, err)
	assert.Equal(t, "DEP-1", got.Reference)

	_, err = l.Find("missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
