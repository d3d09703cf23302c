package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/cove/internal/cove/domain"
	"github.com/aussiebroadwan/cove/internal/cove/store"
)

type invitesRepo struct {
	db dbtx
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invites (id, code, group_id, created_by, used_by, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, NULL, ?, ?, ?)`,
		inv.ID, inv.Code, inv.GroupID, inv.CreatedBy,
		mapOptionalTime(inv.ExpiresAt), inv.CreatedAt, inv.UpdatedAt,
	)
	return err
}

func (r *invitesRepo) GetInviteByCode(ctx context.Context, code string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, code, group_id, created_by, used_by, expires_at, created_at, updated_at
		FROM invites WHERE code = ?`, code)

	inv, err := scanInvite(row)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitesRepo) ListInvitesByGroup(
	ctx context.Context,
	groupID string,
) ([]domain.Invite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, group_id, created_by, used_by, expires_at, created_at, updated_at
		FROM invites
		WHERE group_id = ?
		ORDER BY created_at ASC, id ASC`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}

	return invites, rows.Err()
}

// ClaimInvite is the one write that has to be race-safe: a conditional update
// that only lands while used_by is still NULL. The database applies it
// atomically, so of N concurrent claims on the same code exactly one reports
// a row affected.
func (r *invitesRepo) ClaimInvite(ctx context.Context, code, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invites SET used_by = ?, updated_at = ?
		WHERE code = ? AND used_by IS NULL`,
		userID, time.Now().UTC(), code,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	return nil
}
