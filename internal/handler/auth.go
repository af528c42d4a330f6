package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/zeus-fintech/zeus-api/internal/auth"
	"github.com/zeus-fintech/zeus-api/internal/cache"
	"github.com/zeus-fintech/zeus-api/internal/logging"
	"github.com/zeus-fintech/zeus-api/internal/store"
	"github.com/zeus-fintech/zeus-api/internal/verification"
)

type AuthHandler struct {
	accounts  *store.Store
	verifier  *verification.Service
	replays   *cache.IdempotencyCache
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthHandler(accounts *store.Store, verifier *verification.Service, replays *cache.IdempotencyCache, jwtSecret string, jwtExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		accounts:  accounts,
		verifier:  verifier,
		replays:   replays,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "required"})
	}
	return errs
}

type loginResponse struct {
	Token   string     `json:"token"`
	Session sessionDTO `json:"session"`
}

// Login opens a session at the email-verification stage for any non-empty
// credentials. The password is never checked or stored; this is a demo.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	acct, err := h.accounts.Create(req.Email)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create session", "error", err)
		RespondAppError(w, ErrInternalError, nil)
		return
	}

	token, err := auth.GenerateToken(acct.Session.ID, acct.Session.Email, h.jwtSecret, h.jwtExpiry)
	if err != nil {
		h.accounts.Delete(acct.Session.ID)
		logging.FromContext(r.Context()).Error("failed to sign session token", "error", err)
		RespondAppError(w, ErrInternalError, nil)
		return
	}

	logging.FromContext(r.Context()).Info("session created", "session_id", acct.Session.ID)
	RespondSuccess(w, http.StatusCreated, loginResponse{
		Token:   token,
		Session: toSessionDTO(acct.Session, false),
	})
}

// Logout destroys the session. Any pending face scan is cancelled so it
// cannot fire against a dead session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	acct, appErr := sessionAccount(r, h.accounts)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	h.verifier.CancelFaceScan(r.Context(), acct.Session)
	h.replays.DeleteSession(acct.Session.ID)
	h.accounts.Delete(acct.Session.ID)

	logging.FromContext(r.Context()).Info("session destroyed", "session_id", acct.Session.ID)
	RespondSuccess(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Show returns the caller's verification progress; the client uses it to
// gate navigation and to poll during the face scan.
func (h *AuthHandler) Show(w http.ResponseWriter, r *http.Request) {
	acct, appErr := sessionAccount(r, h.accounts)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	RespondSuccess(w, http.StatusOK, toSessionDTO(acct.Session, h.verifier.Scanning(acct.Session)))
}
