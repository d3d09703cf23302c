package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/cove/internal/cove/domain"
	"github.com/aussiebroadwan/cove/internal/cove/store"
	"github.com/aussiebroadwan/cove/pkg/idx"
	"github.com/aussiebroadwan/cove/pkg/slogx"
)

const (
	GroupNameMinLen = 2
	GroupNameMaxLen = 50
)

var (
	ErrInvalidGroupName = errors.New("group name must be between 2 and 50 characters")

	// ErrGroupNotFound covers both "no such group" and "caller is not a
	// member". The conflation is deliberate: non-members must not be able
	// to probe for a group's existence.
	ErrGroupNotFound = errors.New("group not found")

	// ErrNotGroupMember is only returned by operations where the caller
	// already proved the group exists (invite creation and listing, which
	// mirror the original API's 403).
	ErrNotGroupMember = errors.New("not a member of this group")
)

type GroupService struct {
	Store store.Store
}

// CreateGroup creates a group owned by userID and makes the creator its first
// member, atomically. Duplicate names are allowed; retrying a failed create
// just produces a new group.
func (s *GroupService) CreateGroup(
	ctx context.Context,
	userID string,
	name string,
) (domain.Group, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the name after trimming. Length is counted in runes so
	// multi-byte names are not unfairly rejected.
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < GroupNameMinLen || n > GroupNameMaxLen {
		return domain.Group{}, ErrInvalidGroupName
	}

	now := time.Now().UTC()
	group := domain.Group{
		ID:        idx.New().String(),
		Name:      name,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 2. Insert the group and the creator's membership in one transaction
	// so a group can never exist without at least one member.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Groups().CreateGroup(ctx, group); err != nil {
			return err
		}
		return tx.Groups().AddMember(ctx, group.ID, userID)
	})
	if err != nil {
		log.Error("failed to create group", slog.Any("error", err))
		return domain.Group{}, err
	}

	group.Members = []domain.Member{{UserID: userID, JoinedAt: now}}

	log.Info("group created",
		slog.String("group_id", group.ID),
		slog.String("created_by", userID),
	)

	return group, nil
}

// ListGroups returns the groups userID belongs to, most recently created
// first.
func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]domain.Group, error) {
	return s.Store.Groups().ListGroupsByMember(ctx, userID)
}

// GetGroup returns the group with its member set, but only to members.
// Non-members get the same ErrGroupNotFound a nonexistent id produces.
func (s *GroupService) GetGroup(
	ctx context.Context,
	userID string,
	groupID string,
) (domain.Group, error) {
	group, err := s.Store.Groups().GetGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Group{}, ErrGroupNotFound
		}
		return domain.Group{}, err
	}

	if !group.HasMember(userID) {
		return domain.Group{}, ErrGroupNotFound
	}

	return group, nil
}

// ListMembers returns the group's members in join order, gated behind the
// same membership check (and the same not-found conflation) as GetGroup.
func (s *GroupService) ListMembers(
	ctx context.Context,
	userID string,
	groupID string,
) ([]domain.Member, error) {
	group, err := s.GetGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	return group.Members, nil
}
