package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindSent     TransactionKind = "sent"
	KindReceived TransactionKind = "received"
	KindDeposit  TransactionKind = "deposit"
)

func (k TransactionKind) IsValid() bool {
	switch k {
	case KindSent, KindReceived, KindDeposit:
		return true
	}
	return false
}

// IsCredit reports whether the kind increases the balance.
func (k TransactionKind) IsCredit() bool {
	return k == KindReceived || k == KindDeposit
}

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusFailed:
		return true
	}
	return false
}

type TransferClass string

const (
	TransferInstant       TransferClass = "instant"
	TransferStandard      TransferClass = "standard"
	TransferInternational TransferClass = "international"
)

func (c TransferClass) IsValid() bool {
	switch c {
	case TransferInstant, TransferStandard, TransferInternational:
		return true
	}
	return false
}

// MethodLabel renders the class as the channel label stored on transactions.
func (c TransferClass) MethodLabel() string {
	switch c {
	case TransferInstant:
		return "Instant Transfer"
	case TransferStandard:
		return "Standard Transfer"
	case TransferInternational:
		return "International Transfer"
	default:
		return ""
	}
}

// Transaction is an immutable entry in the account's ledger. ID is assigned
// by the ledger at append time and is monotonically increasing; Reference is
// the user-facing token and must be unique across the log.
type Transaction struct {
	ID         int64
	Kind       TransactionKind
	Amount     decimal.Decimal
	From       string
	To         string
	OccurredAt time.Time
	Status     TransactionStatus
	Method     string
	Reference  string
}

// Date returns the civil date portion used for filtering and export.
func (t Transaction) Date() string {
	return t.OccurredAt.Format("2006-01-02")
}

// Clock returns the 12-hour wall-clock portion used for display and export.
func (t Transaction) Clock() string {
	return t.OccurredAt.Format("3:04 PM")
}
