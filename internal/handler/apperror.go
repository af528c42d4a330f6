package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken     = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken     = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid, expired, or the session has ended"}
	ErrInvalidRequest   = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrMissingIdempotencyKey = &AppError{http.StatusBadRequest, "MISSING_IDEMPOTENCY_KEY", "Idempotency-Key header is required"}
	ErrIdempotencyConflict   = &AppError{http.StatusConflict, "IDEMPOTENCY_CONFLICT", "Idempotency key already used with a different request"}

	ErrInvalidAmount       = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be a positive decimal"}
	ErrInsufficientFunds   = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Insufficient funds"}
	ErrDepositBelowMinimum = &AppError{http.StatusUnprocessableEntity, "DEPOSIT_BELOW_MINIMUM", "Deposit amount is below the minimum"}
	ErrIntegrity           = &AppError{http.StatusInternalServerError, "INTEGRITY_ERROR", "Transaction could not be recorded"}

	ErrNotVerified          = &AppError{http.StatusForbidden, "NOT_VERIFIED", "Complete identity verification first"}
	ErrVerificationMismatch = &AppError{http.StatusUnprocessableEntity, "VERIFICATION_MISMATCH", "Verification code does not match"}
	ErrStageOutOfOrder      = &AppError{http.StatusConflict, "STAGE_OUT_OF_ORDER", "Operation not available at the current verification stage"}
	ErrCameraAccessDenied   = &AppError{http.StatusUnprocessableEntity, "CAMERA_ACCESS_DENIED", "Camera access denied, allow camera permissions and retry"}
)
