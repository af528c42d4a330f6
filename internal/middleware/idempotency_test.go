package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeus-fintech/zeus-api/internal/auth"
	"github.com/zeus-fintech/zeus-api/internal/cache"
	"github.com/zeus-fintech/zeus-api/internal/handler"
)

func countingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"bytes":` + strconv.Itoa(len(body)) + `}`))
	})
}

func idempotentRequest(key string, sessionID uuid.UUID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", strings.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	if sessionID != uuid.Nil {
		req = req.WithContext(auth.ContextWithSessionID(req.Context(), sessionID))
	}
	return req
}

func TestIdempotency_RequiresKey(t *testing.T) {
	calls := 0
	mw := Idempotency(cache.NewIdempotencyCache())(countingHandler(&calls))

	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, idempotentRequest("", uuid.New(), `{"amount":"10"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, calls)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_IDEMPOTENCY_KEY", resp.Error.Code)
}

func TestIdempotency_RequiresSession(t *testing.T) {
	calls := 0
	mw := Idempotency(cache.NewIdempotencyCache())(countingHandler(&calls))

	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, idempotentRequest("key-1", uuid.Nil, `{"amount":"10"}`))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, 0, calls)
}

func TestIdempotency_ReplaysDuplicate(t *testing.T) {
	calls := 0
	mw := Idempotency(cache.NewIdempotencyCache())(countingHandler(&calls))
	sessionID := uuid.New()

	first := httptest.NewRecorder()
	mw.ServeHTTP(first, idempotentRequest("key-1", sessionID, `{"amount":"10"}`))

	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, 1, calls)
	assert.Empty(t, first.Header().Get("X-Idempotent-Replayed"))

	second := httptest.NewRecorder()
	mw.ServeHTTP(second, idempotentRequest("key-1", sessionID, `{"amount":"10"}`))

	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, 1, calls, "handler must not run again on replay")
	assert.Equal(t, "true", second.Header().Get("X-Idempotent-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestIdempotency_ConflictOnReusedKey(t *testing.T) {
	calls := 0
	mw := Idempotency(cache.NewIdempotencyCache())(countingHandler(&calls))
	sessionID := uuid.New()

	first := httptest.NewRecorder()
	mw.ServeHTTP(first, idempotentRequest("key-1", sessionID, `{"amount":"10"}`))
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	mw.ServeHTTP(second, idempotentRequest("key-1", sessionID, `{"amount":"9999"}`))

	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, 1, calls)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "IDEMPOTENCY_CONFLICT", resp.Error.Code)
}

func TestIdempotency_SessionsAreIsolated(t *testing.T) {
	calls := 0
	mw := Idempotency(cache.NewIdempotencyCache())(countingHandler(&calls))

	first := httptest.NewRecorder()
	mw.ServeHTTP(first, idempotentRequest("key-1", uuid.New(), `{"amount":"10"}`))
	second := httptest.NewRecorder()
	mw.ServeHTTP(second, idempotentRequest("key-1", uuid.New(), `{"amount":"10"}`))

	assert.Equal(t, 2, calls, "same key in different sessions must not collide")
}

func TestIdempotency_SkipsReads(t *testing.T) {
	calls := 0
	mw := Idempotency(cache.NewIdempotencyCache())(countingHandler(&calls))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, calls)
}

func TestIdempotencyCache_DeleteSession(t *testing.T) {
	c := cache.NewIdempotencyCache()
	sessionID := uuid.New()
	other := uuid.New()

	mw := Idempotency(c)(countingHandler(new(int)))
	mw.ServeHTTP(httptest.NewRecorder(), idempotentRequest("key-1", sessionID, `{}`))
	mw.ServeHTTP(httptest.NewRecorder(), idempotentRequest("key-2", sessionID, `{}`))
	mw.ServeHTTP(httptest.NewRecorder(), idempotentRequest("key-1", other, `{}`))
	require.Equal(t, 3, c.Len())

	c.DeleteSession(sessionID)

	assert.Equal(t, 1, c.Len())
}
