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

type DepositHandler struct {
	accounts *store.Store
	payments *payment.Service
}

func NewDepositHandler(accounts *store.Store, payments *payment.Service) *DepositHandler {
	return &DepositHandler{accounts: accounts, payments: payments}
}

type depositRequest struct {
	Amount  string          `json:"amount"`
	Method  string          `json:"method"`
	Details json.RawMessage `json:"details"`
}

func (r depositRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Amount == "" {
		errs = append(errs, FieldError{Field: "amount", Message: "required"})
	}
	if r.Method == "" {
		errs = append(errs, FieldError{Field: "method", Message: "required"})
	} else if !domain.FundingMethod(r.Method).IsValid() {
		errs = append(errs, FieldError{Field: "method", Message: "must be bank, card, crypto, or mobile"})
	}
	if len(r.Details) == 0 {
		errs = append(errs, FieldError{Field: "details", Message: "required"})
	}
	return errs
}

type bankDetailsDTO struct {
	AccountNumber string `json:"account_number"`
	RoutingNumber string `json:"routing_number"`
}

type cardDetailsDTO struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

type cryptoDetailsDTO struct {
	CryptoType    string `json:"crypto_type"`
	WalletAddress string `json:"wallet_address"`
}

type mobileDetailsDTO struct {
	Provider    string `json:"mobile_provider"`
	PhoneNumber string `json:"phone_number"`
}

// decodeDetails dispatches the raw payload on the declared funding method.
func decodeDetails(method domain.FundingMethod, raw json.RawMessage) (domain.FundingDetails, error) {
	switch method {
	case domain.FundingBank:
		var d bankDetailsDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return domain.BankDetails{AccountNumber: d.AccountNumber, RoutingNumber: d.RoutingNumber}, nil
	case domain.FundingCard:
		var d cardDetailsDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return domain.CardDetails{Number: d.CardNumber, Expiry: d.ExpiryDate, CVV: d.CVV}, nil
	case domain.FundingCrypto:
		var d cryptoDetailsDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return domain.CryptoDetails{Asset: d.CryptoType, WalletAddress: d.WalletAddress}, nil
	case domain.FundingMobileMoney:
		var d mobileDetailsDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return domain.MobileMoneyDetails{Provider: d.Provider, PhoneNumber: d.PhoneNumber}, nil
	default:
		return nil, domain.ErrInvalidRequest
	}
}

func (h *DepositHandler) Create(w http.ResponseWriter, r *http.Request) {
	acct, appErr := sessionAccount(r, h.accounts)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req depositRequest
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

	details, err := decodeDetails(domain.FundingMethod(req.Method), req.Details)
	if err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	tx, err := h.payments.SubmitDeposit(r.Context(), acct, payment.DepositRequest{
		Amount:  amount,
		Details: details,
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("deposit rejected", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTransactionDTO(tx))
}
