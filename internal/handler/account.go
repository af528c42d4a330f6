package handler

import (
	"net/http"

	"github.com/zeus-fintech/zeus-api/internal/domain"
	"github.com/zeus-fintech/zeus-api/internal/store"
)

type AccountHandler struct {
	accounts *store.Store
}

func NewAccountHandler(accounts *store.Store) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type accountDTO struct {
	Email   string `json:"email"`
	Balance string `json:"balance"`
}

// Show returns the dashboard balance. Like every money operation it is only
// available to fully verified sessions.
func (h *AccountHandler) Show(w http.ResponseWriter, r *http.Request) {
	acct, appErr := sessionAccount(r, h.accounts)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}
	if acct.Session.Stage() != domain.StageFullyVerified {
		RespondAppError(w, ErrNotVerified, nil)
		return
	}

	RespondSuccess(w, http.StatusOK, accountDTO{
		Email:   acct.Session.Email,
		Balance: acct.Ledger.Balance().StringFixed(2),
	})
}
