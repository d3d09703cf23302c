package covesdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateGroup creates a new group owned by the caller and returns it with the
// caller as its only member.
func (c *Client) CreateGroup(ctx context.Context, name string) (Group, error) {
	var env GroupEnvelope

	err := c.doJSON(ctx, http.MethodPost, "/v1/groups",
		CreateGroupRequest{Name: name}, &env)
	if err != nil {
		return Group{}, err
	}

	return env.Data, nil
}

// ListGroups returns the groups the caller belongs to, newest first.
func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	var env GroupListEnvelope

	if err := c.doJSON(ctx, http.MethodGet, "/v1/groups", nil, &env); err != nil {
		return nil, err
	}

	return env.Data, nil
}

// GetGroup returns a single group, members included. Groups the caller does
// not belong to report not_found.
func (c *Client) GetGroup(ctx context.Context, groupID string) (Group, error) {
	var env GroupEnvelope

	path := "/v1/groups/" + url.PathEscape(groupID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &env); err != nil {
		return Group{}, err
	}

	return env.Data, nil
}

// ListMembers returns the group's membership roster in join order.
func (c *Client) ListMembers(ctx context.Context, groupID string) ([]Member, error) {
	var env MemberListEnvelope

	path := "/v1/groups/" + url.PathEscape(groupID) + "/members"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}

	return env.Data, nil
}
