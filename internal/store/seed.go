package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeus-fintech/zeus-api/internal/domain"
	"github.com/zeus-fintech/zeus-api/internal/ledger"
)

// seedTransactions is the fixed demo history every new account starts with.
func seedTransactions(email string) []domain.Transaction {
	return []domain.Transaction{
		{
			Kind:       domain.KindReceived,
			Amount:     decimal.NewFromFloat(250.00),
			From:       "John Doe",
			To:         email,
			OccurredAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			Status:     domain.StatusCompleted,
			Method:     "Bank Transfer",
			Reference:  "TXN001250",
		},
		{
			Kind:       domain.KindSent,
			Amount:     decimal.NewFromFloat(100.00),
			From:       email,
			To:         "Jane Smith",
			OccurredAt: time.Date(2024, 1, 14, 14, 15, 0, 0, time.UTC),
			Status:     domain.StatusCompleted,
			Method:     "Instant Transfer",
			Reference:  "TXN002100",
		},
		{
			Kind:       domain.KindReceived,
			Amount:     decimal.NewFromFloat(500.00),
			From:       "Mike Johnson",
			To:         email,
			OccurredAt: time.Date(2024, 1, 13, 9, 45, 0, 0, time.UTC),
			Status:     domain.StatusCompleted,
			Method:     "Standard Transfer",
			Reference:  "TXN003500",
		},
	}
}

// seededLedger replays the demo history through the normal append path. The
// ledger opens at display minus the seed net, so the balance after seeding
// equals the advertised display balance and the balance invariant holds
// across the whole log.
func seededLedger(display decimal.Decimal, email string) (*ledger.Ledger, error) {
	seeds := seedTransactions(email)

	net := decimal.Zero
	for _, tx := range seeds {
		if tx.Kind.IsCredit() {
			net = net.Add(tx.Amount)
		} else {
			net = net.Sub(tx.Amount)
		}
	}

	led := ledger.New(display.Sub(net))
	for i := len(seeds) - 1; i >= 0; i-- { // oldest first
		if _, err := led.Append(seeds[i]); err != nil {
			return nil, fmt.Errorf("seededLedger: %w", err)
		}
	}
	return led, nil
}
