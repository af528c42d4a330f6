package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the decoded session token. The token only names the session; the
// live session record is the source of truth, so logout invalidates tokens
// immediately regardless of expiry.
type Claims struct {
	SessionID uuid.UUID
	Email     string
}

type tokenClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"session_id"`
	Email     string `json:"email"`
}

func GenerateToken(sessionID uuid.UUID, email string, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionID: sessionID.String(),
		Email:     email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("GenerateToken: %w", err)
	}
	return signed, nil
}

func ValidateToken(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("ValidateToken: %w", err)
	}

	tc, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("ValidateToken: invalid token claims")
	}

	sessionID, err := uuid.Parse(tc.SessionID)
	if err != nil {
		return nil, fmt.Errorf("ValidateToken: invalid session_id in token: %w", err)
	}

	return &Claims{
		SessionID: sessionID,
		Email:     tc.Email,
	}, nil
}
