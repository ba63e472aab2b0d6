package cryptography

import (
	"errors"
	"fmt"
	"time"

	"github.com/dwestland/auth-starter/internal/domain/auth"
	"github.com/golang-jwt/jwt/v5"
)

// magicLinkClaims is the JWT payload of a magic link. The subject is the
// email address the link was sent to.
type magicLinkClaims struct {
	jwt.RegisteredClaims
	CallbackURL string `json:"callback,omitempty"`
}

// jwtTokenIssuer struct that implements the auth.MagicLinkTokenIssuer interface
type jwtTokenIssuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTTokenIssuer creates an HS256 magic-link token issuer.
func NewJWTTokenIssuer(secret, issuer string) (auth.MagicLinkTokenIssuer, error) {
	if len(secret) < 32 {
		return nil, errors.New("token secret must be at least 32 bytes")
	}
	if issuer == "" {
		return nil, errors.New("token issuer is required")
	}
	return &jwtTokenIssuer{secret: []byte(secret), issuer: issuer, now: time.Now}, nil
}

// Issue signs claims.
func (i *jwtTokenIssuer) Issue(claims auth.MagicLinkClaims) (string, error) {
	if claims.ID == "" || claims.Email == "" || claims.ExpiresAt.IsZero() {
		return "", errors.New("magic link claims require id, email and expiry")
	}

	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, magicLinkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claims.ID,
			Subject:   claims.Email,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
		CallbackURL: claims.CallbackURL,
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign magic link token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer and expiry. Every failure wraps
// auth.ErrInvalidToken.
func (i *jwtTokenIssuer) Parse(tokenString string) (*auth.MagicLinkClaims, error) {
	var claims magicLinkClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing id or subject", auth.ErrInvalidToken)
	}

	return &auth.MagicLinkClaims{
		ID:          claims.ID,
		Email:       claims.Subject,
		CallbackURL: claims.CallbackURL,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}
