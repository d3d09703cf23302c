package http

import (
	"github.com/aussiebroadwan/cove/internal/cove/domain"
	"github.com/aussiebroadwan/cove/pkg/covesdk"
)

// toWireGroup converts a domain group into its wire form. Members are carried
// over only when the domain value has them loaded, so list responses stay
// slim.
func toWireGroup(g domain.Group) covesdk.Group {
	out := covesdk.Group{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: g.CreatedBy,
		CreatedAt: g.CreatedAt,
	}

	if len(g.Members) > 0 {
		out.Members = make([]covesdk.Member, 0, len(g.Members))
		for _, m := range g.Members {
			out.Members = append(out.Members, toWireMember(m))
		}
	}

	return out
}

func toWireGroups(groups []domain.Group) []covesdk.Group {
	out := make([]covesdk.Group, 0, len(groups))
	for _, g := range groups {
		g.Members = nil // listings never include rosters
		out = append(out, toWireGroup(g))
	}
	return out
}

func toWireMember(m domain.Member) covesdk.Member {
	return covesdk.Member{
		UserID:   m.UserID,
		JoinedAt: m.JoinedAt,
	}
}

func toWireMembers(members []domain.Member) []covesdk.Member {
	out := make([]covesdk.Member, 0, len(members))
	for _, m := range members {
		out = append(out, toWireMember(m))
	}
	return out
}

// toWireInvite converts a domain invite into its wire form. The internal row
// id stays internal; the code is the invite's public identity.
func toWireInvite(inv domain.Invite) covesdk.Invite {
	out := covesdk.Invite{
		Code:      inv.Code,
		GroupID:   inv.GroupID,
		CreatedBy: inv.CreatedBy,
		CreatedAt: inv.CreatedAt,
	}
	if inv.UsedBy != "" {
		out.UsedBy = inv.UsedBy
	}
	return out
}

func toWireInvites(invites []domain.Invite) []covesdk.Invite {
	out := make([]covesdk.Invite, 0, len(invites))
	for _, inv := range invites {
		out = append(out, toWireInvite(inv))
	}
	return out
}
