package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token claims the service cares about. The identity
// provider owns the token format; we read the registered claims plus the
// profile fields it includes. The subject is the opaque caller identity every
// operation keys on.
type Claims struct {
	jwt.RegisteredClaims

	// Email as asserted by the identity provider.
	Email string `json:"email,omitempty"`

	// PreferredName is the display name for the user.
	PreferredName string `json:"preferred_name,omitempty"`
}

// NewClaims builds minimally-correct claims. Only used by tests and tooling;
// the real tokens come from the identity provider.
func NewClaims(
	subject, issuer string,
	audience []string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// ValidateIssuer checks if the issuer matches the expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil // nothing to enforce
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrAudience
}

// ValidateExpiry checks exp/nbf against the current time with the given
// leeway.
func (c *Claims) ValidateExpiry(leeway time.Duration) error {
	now := time.Now()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Add(leeway).Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
