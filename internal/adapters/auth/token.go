package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"seminarbooking/internal/domain"
)

type sessionClaims struct {
	jwt.RegisteredClaims
	OneTime bool `json:"one_time,omitempty"`
}

type jwtSessionTokens struct {
	secret []byte
}

// NewJWTSessionTokens returns a token issuer/verifier pair backed by HS256
// JWTs signed with the given secret. One-time account tokens carry a
// one_time claim so the session resolver can rank them below authenticated
// sessions.
func NewJWTSessionTokens(secret string) (domain.TokenIssuer, domain.TokenVerifier) {
	t := &jwtSessionTokens{secret: []byte(secret)}
	return t, t
}

func (t *jwtSessionTokens) Issue(userID string, oneTime bool, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		OneTime: oneTime,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (t *jwtSessionTokens) Verify(token string) (string, bool, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return "", false, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return "", false, fmt.Errorf("token has no subject")
	}
	return claims.Subject, claims.OneTime, nil
}
