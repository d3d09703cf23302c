package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/cove/internal/cove/domain"
	"github.com/aussiebroadwan/cove/internal/cove/store"
)

type groupsRepo struct {
	db dbtx
}

func (r *groupsRepo) CreateGroup(ctx context.Context, g domain.Group) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO groups (id, name, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.CreatedBy, g.CreatedAt, g.UpdatedAt,
	)
	return err
}

func (r *groupsRepo) GetGroupByID(ctx context.Context, id string) (domain.Group, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_by, created_at, updated_at
		FROM groups WHERE id = ?`, id)

	g, err := scanGroup(row)
	if err != nil {
		return domain.Group{}, mapNotFound(err)
	}

	members, err := r.ListMembers(ctx, id)
	if err != nil {
		return domain.Group{}, err
	}
	g.Members = members

	return g, nil
}

func (r *groupsRepo) ListGroupsByMember(
	ctx context.Context,
	userID string,
) ([]domain.Group, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.created_by, g.created_at, g.updated_at
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = ?
		ORDER BY g.created_at DESC, g.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

func (r *groupsRepo) AddMember(ctx context.Context, groupID, userID string) error {
	// Existence checked up front so a missing group surfaces as ErrNotFound
	// rather than a raw FK violation.
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM groups WHERE id = ?`, groupID,
	).Scan(&exists)
	if err != nil {
		return mapNotFound(err)
	}

	// Re-adding an existing member is a no-op, which is what makes invite
	// redemption by an existing member harmless.
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO group_members (group_id, user_id, joined_at)
		VALUES (?, ?, ?)
		ON CONFLICT (group_id, user_id) DO NOTHING`,
		groupID, userID, time.Now().UTC(),
	)
	return err
}

func (r *groupsRepo) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM group_members
		WHERE group_id = ? AND user_id = ?`, groupID, userID,
	).Scan(&exists)

	if err != nil {
		if mapNotFound(err) == store.ErrNotFound {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *groupsRepo) ListMembers(ctx context.Context, groupID string) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, joined_at FROM group_members
		WHERE group_id = ?
		ORDER BY joined_at ASC, user_id ASC`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.UserID, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}
