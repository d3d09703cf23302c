package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/cove/internal/cove/domain"
	"github.com/aussiebroadwan/cove/internal/cove/store"
	"github.com/aussiebroadwan/cove/pkg/cryptox"
	"github.com/aussiebroadwan/cove/pkg/idx"
	"github.com/aussiebroadwan/cove/pkg/slogx"
)

var (
	ErrInviteNotFound    = errors.New("invite not found")
	ErrInviteAlreadyUsed = errors.New("invite has already been used")

	// ErrMembershipInconsistent means an invite claim landed but the
	// membership admission behind it failed. The transaction rolls the
	// claim back, so no durable half-state survives, but the failure is
	// surfaced under its own error so it alerts separately from ordinary
	// request errors — a caller was told nothing when they believed they
	// joined.
	ErrMembershipInconsistent = errors.New("invite claimed but membership admission failed")
)

// InviteService mediates the invite lifecycle. It is the only component that
// sets an invite's used_by and the only path by which group membership grows
// after creation.
type InviteService struct {
	Store store.Store
}

// CreateInvite mints a new single-use invite code for the group. Only
// existing members may invite; non-members get ErrNotGroupMember (the group's
// existence is already public to anyone holding its id via the 404/403
// split the original API had).
func (s *InviteService) CreateInvite(
	ctx context.Context,
	userID string,
	groupID string,
) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	// 1. The caller must already be a member of the group.
	if err := s.requireMembership(ctx, userID, groupID); err != nil {
		return domain.Invite{}, err
	}

	// 2. Generate the code: 128 bits from crypto/rand, base64url. At that
	// entropy enumeration is infeasible, which is the primary defense —
	// not rate limiting.
	code, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		log.Error("failed to generate invite code", slog.Any("error", err))
		return domain.Invite{}, err
	}

	now := time.Now().UTC()
	invite := domain.Invite{
		ID:        idx.New().String(),
		Code:      code,
		GroupID:   groupID,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 3. Persist with used_by unset.
	if err := s.Store.Invites().CreateInvite(ctx, invite); err != nil {
		log.Error("failed to create invite",
			slog.String("invite_id", invite.ID),
			slog.Any("error", err),
		)
		return domain.Invite{}, err
	}

	log.Debug("invite created",
		slog.String("invite_id", invite.ID),
		slog.String("group_id", groupID),
		slog.String("created_by", userID),
	)

	return invite, nil
}

// ListInvites returns every invite for the group, used and unused, oldest
// first, so members can audit who was let in through what.
func (s *InviteService) ListInvites(
	ctx context.Context,
	userID string,
	groupID string,
) ([]domain.Invite, error) {
	if err := s.requireMembership(ctx, userID, groupID); err != nil {
		return nil, err
	}

	return s.Store.Invites().ListInvitesByGroup(ctx, groupID)
}

// GetInvite returns an active invite by code, for previewing before
// acceptance. A redeemed code reports ErrInviteAlreadyUsed.
func (s *InviteService) GetInvite(ctx context.Context, code string) (domain.Invite, error) {
	invite, err := s.Store.Invites().GetInviteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrInviteNotFound
		}
		return domain.Invite{}, err
	}

	if invite.Redeemed() {
		return domain.Invite{}, ErrInviteAlreadyUsed
	}

	return invite, nil
}

// RedeemInvite exchanges an unused code for membership in its group and
// returns the joined group. The claim is an atomic conditional update: under
// concurrent redemption of one code exactly one caller wins and the rest get
// ErrInviteAlreadyUsed. Redeeming is safe to retry — a retry after an unknown
// outcome either no-ops into ErrInviteAlreadyUsed or succeeds cleanly.
func (s *InviteService) RedeemInvite(
	ctx context.Context,
	userID string,
	code string,
) (domain.Group, error) {
	log := slogx.FromContext(ctx)

	var joined domain.Group
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Claim: conditional update that only lands while used_by
		// is still unset.
		if err := tx.Invites().ClaimInvite(ctx, code, userID); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}

			// No unclaimed invite matched — distinguish "unknown
			// code" from "already used".
			if _, getErr := tx.Invites().GetInviteByCode(ctx, code); getErr != nil {
				if errors.Is(getErr, store.ErrNotFound) {
					return ErrInviteNotFound
				}
				return getErr
			}
			return ErrInviteAlreadyUsed
		}

		invite, err := tx.Invites().GetInviteByCode(ctx, code)
		if err != nil {
			return err
		}

		// 2. Admit. Idempotent, so a redeemer who already belongs to
		// the group consumes the invite without a duplicate edge.
		if err := tx.Groups().AddMember(ctx, invite.GroupID, userID); err != nil {
			log.Error("invite claim rolled back: membership admission failed",
				slog.String("invite_id", invite.ID),
				slog.String("group_id", invite.GroupID),
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
			return fmt.Errorf("%w: %v", ErrMembershipInconsistent, err)
		}

		joined, err = tx.Groups().GetGroupByID(ctx, invite.GroupID)
		return err
	})
	if err != nil {
		return domain.Group{}, err
	}

	log.Info("invite redeemed",
		slog.String("group_id", joined.ID),
		slog.String("user_id", userID),
	)

	return joined, nil
}

// requireMembership maps the 404/403 split: unknown group is
// ErrGroupNotFound, known group without membership is ErrNotGroupMember.
func (s *InviteService) requireMembership(
	ctx context.Context,
	userID string,
	groupID string,
) error {
	group, err := s.Store.Groups().GetGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	if !group.HasMember(userID) {
		return ErrNotGroupMember
	}

	return nil
}
