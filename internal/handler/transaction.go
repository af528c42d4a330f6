package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/zeus-fintech/zeus-api/internal/domain"
	"github.com/zeus-fintech/zeus-api/internal/export"
	"github.com/zeus-fintech/zeus-api/internal/logging"
	"github.com/zeus-fintech/zeus-api/internal/service/history"
	"github.com/zeus-fintech/zeus-api/internal/store"
)

type TransactionHandler struct {
	accounts *store.Store
	product  string
}

func NewTransactionHandler(accounts *store.Store, product string) *TransactionHandler {
	return &TransactionHandler{accounts: accounts, product: product}
}

// criteriaFromQuery reads search, kind, status, from and to. Dates are
// civil dates (2006-01-02), inclusive on both ends.
func criteriaFromQuery(r *http.Request) (history.Criteria, []FieldError) {
	q := r.URL.Query()
	c := history.Criteria{
		Search: q.Get("search"),
		Kind:   q.Get("kind"),
		Status: q.Get("status"),
	}

	var fields []FieldError
	if c.Kind != "" && c.Kind != "all" && !domain.TransactionKind(c.Kind).IsValid() {
		fields = append(fields, FieldError{Field: "kind", Message: "must be sent, received, deposit, or all"})
	}
	if c.Status != "" && c.Status != "all" && !domain.TransactionStatus(c.Status).IsValid() {
		fields = append(fields, FieldError{Field: "status", Message: "must be completed, pending, failed, or all"})
	}

	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			fields = append(fields, FieldError{Field: "from", Message: "must be a date like 2006-01-02"})
		} else {
			c.DateFrom = &t
		}
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			fields = append(fields, FieldError{Field: "to", Message: "must be a date like 2006-01-02"})
		} else {
			c.DateTo = &t
		}
	}
	return c, fields
}

func (h *TransactionHandler) verifiedAccount(w http.ResponseWriter, r *http.Request) (*store.Account, bool) {
	acct, appErr := sessionAccount(r, h.accounts)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return nil, false
	}
	if acct.Session.Stage() != domain.StageFullyVerified {
		RespondAppError(w, ErrNotVerified, nil)
		return nil, false
	}
	return acct, true
}

type summaryDTO struct {
	TotalSent     string `json:"total_sent"`
	TotalReceived string `json:"total_received"`
	Net           string `json:"net"`
}

type transactionListResponse struct {
	Transactions []transactionDTO `json:"transactions"`
	Summary      summaryDTO       `json:"summary"`
	Shown        int              `json:"shown"`
	Total        int              `json:"total"`
}

// List returns the filtered log, newest first, plus totals over the whole
// log (the summary cards ignore filters).
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	acct, ok := h.verifiedAccount(w, r)
	if !ok {
		return
	}

	criteria, fields := criteriaFromQuery(r)
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	all := acct.Ledger.Transactions()
	filtered := history.Filter(all, criteria)
	summary := history.Summarize(all)

	dtos := make([]transactionDTO, len(filtered))
	for i, tx := range filtered {
		dtos[i] = toTransactionDTO(tx)
	}

	RespondSuccess(w, http.StatusOK, transactionListResponse{
		Transactions: dtos,
		Summary: summaryDTO{
			TotalSent:     summary.TotalSent.StringFixed(2),
			TotalReceived: summary.TotalReceived.StringFixed(2),
			Net:           summary.Net.StringFixed(2),
		},
		Shown: len(filtered),
		Total: len(all),
	})
}

// ExportCSV downloads the filtered log as text/csv.
func (h *TransactionHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	acct, ok := h.verifiedAccount(w, r)
	if !ok {
		return
	}

	criteria, fields := criteriaFromQuery(r)
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	filtered := history.Filter(acct.Ledger.Transactions(), criteria)
	doc, err := export.CSV(filtered)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to render csv", "error", err)
		RespondAppError(w, ErrInternalError, nil)
		return
	}

	filename := export.CSVFilename(h.product, time.Now().UTC())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		logging.FromContext(r.Context()).Error("failed to write csv response", "error", err)
	}
}

// Receipt downloads one transaction as a text/plain receipt.
func (h *TransactionHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	acct, ok := h.verifiedAccount(w, r)
	if !ok {
		return
	}

	reference := r.PathValue("reference")
	tx, err := acct.Ledger.Find(reference)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	filename := export.ReceiptFilename(h.product, tx.Reference)
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, export.Receipt(h.product, tx)); err != nil {
		logging.FromContext(r.Context()).Error("failed to write receipt response", "error", err)
	}
}
