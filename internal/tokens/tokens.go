package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. Callers must distinguish the two: they map to
// different client-facing error codes.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// SessionClaims is the minimal claim set carried by a session token.
type SessionClaims struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	LoginMethod string `json:"loginMethod"`
	jwt.RegisteredClaims
}

// Generate creates a signed HS256 session token expiring ttl from now.
func Generate(secret, userID, email, loginMethod string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("tokens: signing secret is not configured")
	}
	now := time.Now()
	claims := SessionClaims{
		UserID:      userID,
		Email:       email,
		LoginMethod: loginMethod,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// Verify validates signature and expiry and returns the claims.
// Expiry is reported as ErrTokenExpired; every other failure (bad signature,
// malformed token, wrong algorithm) as ErrTokenInvalid.
func Verify(secret, raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Decode extracts claims without verifying signature or expiry. It returns nil
// on malformed input and must never gate access; it only exists so an
// already-authenticated caller can be shown its expiry.
func Decode(raw string) *SessionClaims {
	claims := &SessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil
	}
	return claims
}
