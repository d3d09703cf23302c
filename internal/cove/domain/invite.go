package domain

import "time"

// Invite is a single-use code granting membership in a group to whoever
// redeems it first. Once UsedBy is set the invite is permanently redeemed;
// there is no transition back. Invites are never deleted — redeemed ones stay
// around as the audit trail of who joined through what.
type Invite struct {
	ID        string
	Code      string
	GroupID   string
	CreatedBy string

	// UsedBy is empty until exactly one redemption succeeds.
	UsedBy string

	// ExpiresAt is reserved for a future TTL decision. No expiry is
	// enforced while it is nil.
	ExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Redeemed reports whether the invite has been consumed.
func (i Invite) Redeemed() bool { return i.UsedBy != "" }
