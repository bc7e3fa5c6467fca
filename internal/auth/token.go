package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the claims of a session token.
type Claims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// Verifier issues and verifies session tokens signed with a shared secret.
//
// Tokens are never stored. A token is valid as long as its signature
// matches and it has not expired.
type Verifier struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithClock sets the function used to determine the current time.
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) {
		v.now = now
	}
}

// NewVerifier creates a Verifier signing tokens with the secret.
// Issued tokens expire after lifetime.
func NewVerifier(secret string, lifetime time.Duration, opts ...Option) *Verifier {
	v := &Verifier{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Issue mints a token for the user. It returns the signed token and
// its expiry time.
func (v *Verifier) Issue(userID uint) (string, time.Time, error) {
	now := v.now()
	expires := now.Add(v.lifetime)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("could not sign token: %w", err)
	}

	return signed, expires, nil
}

// Verify checks the signature and expiry of the token and returns the
// ID of the user it was issued for.
func (v *Verifier) Verify(token string) (uint, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.UserID == 0 {
		return 0, fmt.Errorf("%w: no user", ErrInvalidToken)
	}

	return claims.UserID, nil
}
