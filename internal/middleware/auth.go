package middleware

import (
	"net/http"
	"strings"

	"github.com/zeus-fintech/zeus-api/internal/auth"
	"github.com/zeus-fintech/zeus-api/internal/handler"
	"github.com/zeus-fintech/zeus-api/internal/store"
)

// Auth validates the bearer token and checks the session it names is still
// alive. Logout deletes the session, so a logged-out token fails here even
// before its JWT expiry.
func Auth(secret string, accounts *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handler.RespondAppError(w, handler.ErrMissingToken, nil)
				return
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			claims, err := auth.ValidateToken(token, secret)
			if err != nil {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			if _, ok := accounts.Get(claims.SessionID); !ok {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			ctx := auth.ContextWithSessionID(r.Context(), claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
