package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/zeus-fintech/zeus-api/internal/domain"
	"github.com/zeus-fintech/zeus-api/internal/logging"
	"github.com/zeus-fintech/zeus-api/internal/service/payment"
	"github.com/zeus-fintech/zeus-api/internal/store"
)

type TransferHandler struct {
	accounts *store.Store
	payments *payment.Service
}

func NewTransferHandler(accounts *store.Store, payments *payment.Service) *TransferHandler {
	return &TransferHandler{accounts: accounts, payments: payments}
}

type transferRequest struct {
	Recipient     string `json:"recipient"`
	Amount        string `json:"amount"`
	TransferClass string `json:"transfer_class"`
}

func (r transferRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Recipient == "" {
		errs = append(errs, FieldError{Field: "recipient", Message: "required"})
	}
	if r.Amount == "" {
		errs = append(errs, FieldError{Field: "amount", Message: "required"})
	}
	if r.TransferClass == "" {
		errs = append(errs, FieldError{Field: "transfer_class", Message: "required"})
	} else if !domain.TransferClass(r.TransferClass).IsValid() {
		errs = append(errs, FieldError{Field: "transfer_class", Message: "must be instant, standard, or international"})
	}
	return errs
}

type transactionDTO struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	Amount    string `json:"amount"`
	From      string `json:"from"`
	To        string `json:"to"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
	Method    string `json:"method"`
	Reference string `json:"reference"`
}

func toTransactionDTO(tx domain.Transaction) transactionDTO {
	return transactionDTO{
		ID:        tx.ID,
		Kind:      string(tx.Kind),
		Amount:    tx.Amount.StringFixed(2),
		From:      tx.From,
		To:        tx.To,
		Date:      tx.Date(),
		Time:      tx.Clock(),
		Status:    string(tx.Status),
		Method:    tx.Method,
		Reference: tx.Reference,
	}
}

func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	acct, appErr := sessionAccount(r, h.accounts)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		RespondValidationError(w, []FieldError{{Field: "amount", Message: "must be a decimal number"}})
		return
	}

	tx, err := h.payments.SubmitTransfer(r.Context(), acct, payment.TransferRequest{
		Recipient: req.Recipient,
		Amount:    amount,
		Class:     domain.TransferClass(req.TransferClass),
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("transfer rejected", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTransactionDTO(tx))
}
