package util

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session identity inside the bearer token. The token
// alone never authenticates a request: middleware always loads the session
// row, so logout and expiry are enforced server-side.
type Claims struct {
	SessionID string `json:"session_id"`
	UserID    uint   `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateToken signs a bearer token for the given session.
func GenerateToken(secret, sessionID string, userID uint, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	claims := &Claims{
		SessionID: sessionID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken parses and validates a bearer token, returning its Claims.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
