package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/cove/internal/cove/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. Sub-repositories keep concerns tidy and
// testable, and make it obvious which operations participate in a Tx.
type Store interface {
	Groups() Groups
	Invites() Invites

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to do multi-step mutations (create-group-and-join,
	// claim-invite-and-admit).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying database handle.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Groups interface {
	// CreateGroup inserts a new group (id is provided by the app via ULID).
	// Membership for the creator is added separately via AddMember within
	// the same transaction.
	CreateGroup(ctx context.Context, g domain.Group) error

	// GetGroupByID returns a group with its member set loaded.
	GetGroupByID(ctx context.Context, id string) (domain.Group, error)

	// ListGroupsByMember returns the groups userID belongs to, most
	// recently created first. Member sets are not loaded.
	ListGroupsByMember(ctx context.Context, userID string) ([]domain.Group, error)

	// AddMember adds userID to the group. Adding an existing member is a
	// no-op. Returns ErrNotFound if the group does not exist.
	AddMember(ctx context.Context, groupID, userID string) error

	// IsMember reports whether userID belongs to the group.
	IsMember(ctx context.Context, groupID, userID string) (bool, error)

	// ListMembers returns the group's members in join order.
	ListMembers(ctx context.Context, groupID string) ([]domain.Member, error)
}

type Invites interface {
	// CreateInvite writes a new invite with used_by unset.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByCode returns the invite regardless of redemption state.
	GetInviteByCode(ctx context.Context, code string) (domain.Invite, error)

	// ListInvitesByGroup returns all invites for a group, used and unused,
	// oldest first so the audit history reads top-down.
	ListInvitesByGroup(ctx context.Context, groupID string) ([]domain.Invite, error)

	// ClaimInvite atomically sets used_by for an unclaimed invite. This is
	// a single conditional update: under concurrent redemption of the same
	// code exactly one caller's claim lands. Returns ErrNotFound when no
	// unclaimed invite with that code exists — the caller distinguishes
	// "unknown code" from "already used" by fetching the invite.
	ClaimInvite(ctx context.Context, code, userID string) error
}
