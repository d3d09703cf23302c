package covesdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateInvite mints a single-use invite code for the group. The caller must
// already be a member.
func (c *Client) CreateInvite(ctx context.Context, groupID string) (Invite, error) {
	var env InviteEnvelope

	err := c.doJSON(ctx, http.MethodPost, "/v1/invites",
		CreateInviteRequest{GroupID: groupID}, &env)
	if err != nil {
		return Invite{}, err
	}

	return env.Data, nil
}

// ListInvites returns every invite for the group, used and unused, oldest
// first.
func (c *Client) ListInvites(ctx context.Context, groupID string) ([]Invite, error) {
	var env InviteListEnvelope

	path := "/v1/groups/" + url.PathEscape(groupID) + "/invites"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}

	return env.Data, nil
}

// GetInvite previews an active invite without consuming it. An already
// redeemed code reports already_used, an unknown one not_found.
func (c *Client) GetInvite(ctx context.Context, code string) (Invite, error) {
	var env InviteEnvelope

	path := "/v1/invites/" + url.PathEscape(code)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &env); err != nil {
		return Invite{}, err
	}

	return env.Data, nil
}

// AcceptInvite redeems the code and returns the joined group. A code that has
// already been consumed reports already_used; use errors.As with *APIError
// and IsAlreadyUsed to branch on it.
func (c *Client) AcceptInvite(ctx context.Context, code string) (Group, error) {
	var env GroupEnvelope

	path := "/v1/invites/" + url.PathEscape(code) + "/accept"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &env); err != nil {
		return Group{}, err
	}

	return env.Data, nil
}

// Me returns the identity the server resolved from the bearer token.
func (c *Client) Me(ctx context.Context) (Identity, error) {
	var env IdentityEnvelope

	if err := c.doJSON(ctx, http.MethodGet, "/v1/me", nil, &env); err != nil {
		return Identity{}, err
	}

	return env.Data, nil
}
