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

type DepositRequest struct {
	Amount  decimal.Decimal
	Details domain.FundingDetails
}

// SubmitDeposit validates the request and credits the amount by appending
// one completed deposit transaction. Only the method label derived from the
// funding details is recorded; the details themselves are discarded. No
// upper bound is enforced.
func (s *Service) SubmitDeposit(ctx context.Context, acct *store.Account, req DepositRequest) (domain.Transaction, error) {
	if err := requireVerified(acct); err != nil {
		return domain.Transaction{}, fmt.Errorf("SubmitDeposit: %w", err)
	}
	if err := s.validateDeposit(req); err != nil {
		return domain.Transaction{}, fmt.Errorf("SubmitDeposit: %w", err)
	}

	method := req.Details.MethodLabel()
	tx, err := acct.Ledger.Append(domain.Transaction{
		Kind:       domain.KindDeposit,
		Amount:     req.Amount,
		From:       method,
		To:         acct.Session.Email,
		OccurredAt: time.Now().UTC(),
		Status:     domain.StatusCompleted,
		Method:     method,
		Reference:  newReference(depositRefPrefix),
	})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("SubmitDeposit: %w", err)
	}

	logging.FromContext(ctx).Info("deposit completed",
		"session_id", acct.Session.ID,
		"reference", tx.Reference,
		"amount", req.Amount.StringFixed(2),
		"method", method,
	)
	return tx, nil
}

func (s *Service) validateDeposit(req DepositRequest) error {
	if !req.Amount.IsPositive() {
		return fmt.Errorf("validateDeposit: %w", domain.ErrInvalidAmount)
	}
	if req.Amount.LessThan(s.cfg.MinDeposit) {
		return fmt.Errorf("validateDeposit: minimum %s: %w", s.cfg.MinDeposit.StringFixed(2), domain.ErrDepositBelowMinimum)
	}
	if req.Details == nil {
		return fmt.Errorf("validateDeposit: details: %w", domain.ErrMissingField)
	}
	if err := req.Details.Validate(); err != nil {
		return fmt.Errorf("validateDeposit: %w", err)
	}
	return nil
}
