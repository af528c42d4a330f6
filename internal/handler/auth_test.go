package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeus-fintech/zeus-api/internal/auth"
	"github.com/zeus-fintech/zeus-api/internal/cache"
	"github.com/zeus-fintech/zeus-api/internal/config"
	"github.com/zeus-fintech/zeus-api/internal/store"
	"github.com/zeus-fintech/zeus-api/internal/verification"
)

const testJWTSecret = "test-secret-key"

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:             testJWTSecret,
		JWTExpiry:             time.Hour,
		ProductName:           "zeus",
		EmailVerificationCode: "123456",
		PhoneVerificationCode: "789012",
		FaceScanDuration:      50 * time.Millisecond,
		OpeningBalance:        decimal.RequireFromString("5420.50"),
		MinDeposit:            decimal.RequireFromString("1.00"),
	}
}

func newAuthHandler(t *testing.T) (*AuthHandler, *store.Store) {
	t.Helper()
	cfg := testConfig()
	accounts := store.New(cfg.OpeningBalance)
	verifier := verification.NewService(cfg)
	replays := cache.NewIdempotencyCache()
	return NewAuthHandler(accounts, verifier, replays, cfg.JWTSecret, cfg.JWTExpiry), accounts
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "valid credentials",
			body:       `{"email":"demo@zeus.app","password":"hunter2"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing email",
			body:       `{"password":"hunter2"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "missing password",
			body:       `{"email":"demo@zeus.app"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "invalid JSON body",
			body:       "not-json",
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newAuthHandler(t)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			h.Login(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)

			var resp APIResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tc.wantCode == "" {
				assert.True(t, resp.Success)
			} else {
				assert.False(t, resp.Success)
				require.NotNil(t, resp.Error)
				assert.Equal(t, tc.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestLogin_IssuesUsableToken(t *testing.T) {
	h, accounts := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"demo@zeus.app","password":"hunter2"}`))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		Success bool          `json:"success"`
		Data    loginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.Token)

	assert.Equal(t, "demo@zeus.app", resp.Data.Session.Email)
	assert.Equal(t, "email_pending", resp.Data.Session.Stage)

	claims, err := auth.ValidateToken(resp.Data.Token, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "demo@zeus.app", claims.Email)

	acct, ok := accounts.Get(claims.SessionID)
	require.True(t, ok)
	assert.Equal(t, "5420.50", acct.Ledger.Balance().StringFixed(2))
}

func TestLogout_DestroysSession(t *testing.T) {
	h, accounts := newAuthHandler(t)

	acct, err := accounts.Create("demo@zeus.app")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(auth.ContextWithSessionID(req.Context(), acct.Session.ID))
	rr := httptest.NewRecorder()

	h.Logout(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	_, ok := accounts.Get(acct.Session.ID)
	assert.False(t, ok)
}

func TestLogout_WithoutSession(t *testing.T) {
	h, _ := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rr := httptest.NewRecorder()

	h.Logout(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
