package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/penmark/penmark/internal/domain"
)

// Tokens issues and verifies the signed session tokens that carry a user's
// identity between requests. Tokens are stateless: there is no server-side
// session table, no revocation, and no refresh. The secret is loaded once at
// startup and never rotated within a run.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a token issuer/verifier with the given HMAC secret and
// token lifetime.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// TTL returns the token lifetime, which callers use as the cookie MaxAge.
func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issue signs a token asserting the given identity, expiring ttl from now.
func (t *Tokens) Issue(userID int64, username string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns the identity it
// asserts. Missing, garbled, tampered, and expired tokens all return
// domain.ErrInvalidToken; callers treat any failure as anonymous.
func (t *Tokens) Verify(raw string) (domain.Identity, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{UserID: userID, Username: claims.Username}, nil
}
