package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInvalidAmount        = errors.New("amount must be a positive decimal")
	ErrMissingField         = errors.New("required field missing")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrNotVerified          = errors.New("session is not fully verified")
	ErrVerificationMismatch = errors.New("verification code does not match")
	ErrStageOutOfOrder      = errors.New("operation not available at current verification stage")
	ErrCameraAccessDenied   = errors.New("camera access denied")
	ErrDepositBelowMinimum  = errors.New("deposit amount below minimum")
	ErrDuplicateTransaction = errors.New("duplicate transaction id or reference")
	ErrSessionExpired       = errors.New("session no longer exists")
)
