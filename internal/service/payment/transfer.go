package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zeus-fintech/zeus-api/internal/domain"
	"github.com/zeus-fintech/zeus-api/internal/logging"
	"github.com/zeus-fintech/zeus-api/internal/store"
)

type TransferRequest struct {
	Recipient string
	Amount    decimal.Decimal
	Class     domain.TransferClass
}

// SubmitTransfer validates the request against the account and, on success,
// debits the amount by appending one completed sent transaction. The append
// is the only mutation, so the debit and the log entry cannot diverge.
func (s *Service) SubmitTransfer(ctx context.Context, acct *store.Account, req TransferRequest) (domain.Transaction, error) {
	if err := requireVerified(acct); err != nil {
		return domain.Transaction{}, fmt.Errorf("SubmitTransfer: %w", err)
	}
	if err := validateTransfer(req); err != nil {
		return domain.Transaction{}, fmt.Errorf("SubmitTransfer: %w", err)
	}
	if req.Amount.GreaterThan(acct.Ledger.Balance()) {
		return domain.Transaction{}, fmt.Errorf("SubmitTransfer: %w", domain.ErrInsufficientFunds)
	}

	tx, err := acct.Ledger.Append(domain.Transaction{
		Kind:       domain.KindSent,
		Amount:     req.Amount,
		From:       acct.Session.Email,
		To:         req.Recipient,
		OccurredAt: time.Now().UTC(),
		Status:     domain.StatusCompleted,
		Method:     req.Class.MethodLabel(),
		Reference:  newReference(transferRefPrefix),
	})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("SubmitTransfer: %w", err)
	}

	logging.FromContext(ctx).Info("transfer completed",
		"session_id", acct.Session.ID,
		"reference", tx.Reference,
		"recipient", req.Recipient,
		"amount", req.Amount.StringFixed(2),
		"method", tx.Method,
	)
	return tx, nil
}

func validateTransfer(req TransferRequest) error {
	if req.Recipient == "" {
		return fmt.Errorf("validateTransfer: recipient: %w", domain.ErrMissingField)
	}
	if !req.Class.IsValid() {
		return fmt.Errorf("validateTransfer: transfer_class %q: %w", req.Class, domain.ErrInvalidRequest)
	}
	if !req.Amount.IsPositive() {
		return fmt.Errorf("validateTransfer: %w", domain.ErrInvalidAmount)
	}
	return nil
}
