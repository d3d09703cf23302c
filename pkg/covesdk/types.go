package covesdk

import "time"

// Group is the wire form of a group.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// Members is present on single-group reads, omitted from listings.
	Members []Member `json:"members,omitempty"`
}

// Member is a membership edge in a group.
type Member struct {
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// Invite is the wire form of an invite. UsedBy is empty while the invite is
// still active.
type Invite struct {
	Code      string    `json:"code"`
	GroupID   string    `json:"group_id"`
	CreatedBy string    `json:"created_by"`
	UsedBy    string    `json:"used_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the caller info echoed back by GET /v1/me.
type Identity struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email,omitempty"`
	PreferredName string `json:"preferred_name,omitempty"`
}

// ============================================================================
// Request bodies
// ============================================================================

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateInviteRequest struct {
	GroupID string `json:"group_id"`
}

// ============================================================================
// Response envelopes
//
// Every success response wraps its payload in {"data": ...} with an explicit
// envelope type per endpoint; errors use ErrorResponse.
// ============================================================================

type GroupEnvelope struct {
	Data Group `json:"data"`
}

type GroupListEnvelope struct {
	Data []Group `json:"data"`
}

type MemberListEnvelope struct {
	Data []Member `json:"data"`
}

type InviteEnvelope struct {
	Data Invite `json:"data"`
}

type InviteListEnvelope struct {
	Data []Invite `json:"data"`
}

type IdentityEnvelope struct {
	Data Identity `json:"data"`
}

// HealthResponse is returned by the /livez and /readyz probes. Health probes
// are not enveloped; they are for machines, not API consumers.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency status on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}

// ErrorResponse is the fixed error envelope.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "not_found")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}
