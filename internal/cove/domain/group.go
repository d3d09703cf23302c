package domain

import "time"

// Group is a private space users join by invite. The creator is always a
// member from the moment of creation, so a group never has an empty member
// set.
type Group struct {
	ID        string
	Name      string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Members holds the identity references belonging to the group.
	// Populated on reads that need it (GetGroup), left nil elsewhere.
	Members []Member
}

// Member is a membership edge between an identity and a group.
type Member struct {
	UserID   string
	JoinedAt time.Time
}

// HasMember reports whether userID is in the loaded member set.
func (g Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
