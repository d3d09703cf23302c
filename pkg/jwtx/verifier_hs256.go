package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier verifies tokens signed with a shared secret. This matches the
// identity provider's signing setup: it hands the backend a symmetric JWT
// secret and the backend only ever verifies.
type HS256Verifier struct {
	secret []byte
	opts   VerifyOptions
}

// NewVerifierHS256 constructs a verifier bound to the provider's shared
// secret and the issuer/audience it is expected to mint for.
func NewVerifierHS256(secret []byte, opts VerifyOptions) *HS256Verifier {
	return &HS256Verifier{secret: secret, opts: opts}
}

// Verify parses and validates the token, returning its claims. The signing
// algorithm is pinned to HS256 so a token asserting any other alg (including
// "none") is rejected before signature checking.
func (v *HS256Verifier) Verify(token string) (Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrAlgMismatch
			}
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.opts.Leeway),
	)

	switch {
	case err == nil && parsed.Valid:
		// fallthrough to claim checks below
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Claims{}, ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return Claims{}, ErrNotYetValid
	case errors.Is(err, ErrAlgMismatch):
		return Claims{}, ErrAlgMismatch
	default:
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.opts.Audience); err != nil {
		return Claims{}, err
	}
	if claims.Subject == "" {
		return Claims{}, ErrMissingSub
	}

	return claims, nil
}
