package handler

import (
	"encoding/json"
	"net/http"

	"github.com/zeus-fintech/zeus-api/internal/store"
	"github.com/zeus-fintech/zeus-api/internal/verification"
)

type VerificationHandler struct {
	accounts *store.Store
	verifier *verification.Service
}

func NewVerificationHandler(accounts *store.Store, verifier *verification.Service) *VerificationHandler {
	return &VerificationHandler{accounts: accounts, verifier: verifier}
}

type codeRequest struct {
	Code string `json:"code"`
}

func (r codeRequest) Validate() []FieldError {
	if r.Code == "" {
		return []FieldError{{Field: "code", Message: "required"}}
	}
	return nil
}

func (h *VerificationHandler) SubmitEmailCode(w http.ResponseWriter, r *http.Request) {
	acct, appErr := sessionAccount(r, h.accounts)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req codeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	if err := h.verifier.SubmitEmailCode(r.Context(), acct.Session, req.Code); err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toSessionDTO(acct.Session, false))
}

type phoneNumberRequest struct {
	PhoneNumber string `json:"phone_number"`
}

func (r phoneNumberRequest) Validate() []FieldError {
	if r.PhoneNumber == "" {
		return []FieldError{{Field: "phone_number", Message: "required"}}
	}
	return nil
}

func (h *VerificationHandler) SubmitPhoneNumber(w http.ResponseWriter, r *http.Request) {
	acct, appErr := sessionAccount(r, h.accounts)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req phoneNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	if err := h.verifier.SubmitPhoneNumber(r.Context(), acct.Session, req.PhoneNumber); err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toSessionDTO(acct.Session, false))
}

// EditPhoneNumber returns the phone step to number entry without touching
// the outer stage.
func (h *VerificationHandler) EditPhoneNumber(w http.ResponseWriter, r *http.Request) {
	acct, appErr := sessionAccount(r, h.accounts)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	if err := h.verifier.EditPhoneNumber(r.Context(), acct.Session); err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toSessionDTO(acct.Session, false))
}

func (h *VerificationHandler) SubmitPhoneCode(w http.ResponseWriter, r *http.Request) {
	acct, appErr := sessionAccount(r, h.accounts)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req codeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	if err := h.verifier.SubmitPhoneCode(r.Context(), acct.Session, req.Code); err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toSessionDTO(acct.Session, false))
}

type faceScanRequest struct {
	CameraGranted bool `json:"camera_granted"`
}

// StartFaceScan begins the simulated capture. A denied camera is reported
// by the client and surfaces as CAMERA_ACCESS_DENIED without starting a
// scan; the client polls GET /session for completion.
func (h *VerificationHandler) StartFaceScan(w http.ResponseWriter, r *http.Request) {
	acct, appErr := sessionAccount(r, h.accounts)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req faceScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if !req.CameraGranted {
		if err := h.verifier.ReportCameraDenied(r.Context(), acct.Session); err != nil {
			RespondDomainError(w, err)
			return
		}
	}

	if err := h.verifier.StartFaceScan(r.Context(), acct.Session); err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusAccepted, toSessionDTO(acct.Session, true))
}

// CancelFaceScan aborts a pending scan; the stage stays at face capture.
func (h *VerificationHandler) CancelFaceScan(w http.ResponseWriter, r *http.Request) {
	acct, appErr := sessionAccount(r, h.accounts)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	h.verifier.CancelFaceScan(r.Context(), acct.Session)
	RespondSuccess(w, http.StatusOK, toSessionDTO(acct.Session, false))
}
