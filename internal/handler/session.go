package handler

import (
	"net/http"

	"github.com/zeus-fintech/zeus-api/internal/auth"
	"github.com/zeus-fintech/zeus-api/internal/domain"
	"github.com/zeus-fintech/zeus-api/internal/store"
)

// sessionAccount resolves the caller's live account from the authenticated
// session id. A token for a destroyed session is as good as no token.
func sessionAccount(r *http.Request, accounts *store.Store) (*store.Account, *AppError) {
	id, ok := auth.SessionIDFromContext(r.Context())
	if !ok {
		return nil, ErrMissingToken
	}

	acct, ok := accounts.Get(id)
	if !ok {
		return nil, ErrInvalidToken
	}
	return acct, nil
}

type sessionDTO struct {
	Email     string `json:"email"`
	Stage     string `json:"stage"`
	PhoneStep string `json:"phone_step,omitempty"`
	Scanning  bool   `json:"scanning,omitempty"`
}

func toSessionDTO(sess *domain.Session, scanning bool) sessionDTO {
	stage, step := sess.Progress()
	return sessionDTO{
		Email:     sess.Email,
		Stage:     string(stage),
		PhoneStep: string(step),
		Scanning:  scanning,
	}
}
