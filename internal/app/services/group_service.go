package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	authz "github.com/tranminh/mangareader/internal/app/auth"
	"github.com/tranminh/mangareader/internal/app/models"
	"github.com/tranminh/mangareader/internal/app/repositories"
	"github.com/tranminh/mangareader/internal/pkg/apperrors"
	"github.com/tranminh/mangareader/internal/pkg/helpers"
)

// GroupChanges holds the mutable group fields. The name is part of the
// group's identity and cannot be changed after creation.
type GroupChanges struct {
	Description *string
	Avatar      *string
}

// GroupService manages translation groups and their membership
type GroupService struct {
	groupRepo   repositories.IGroupRepository
	accountRepo repositories.IAccountRepository
	logger      zerolog.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo repositories.IGroupRepository, accountRepo repositories.IAccountRepository, logger zerolog.Logger) *GroupService {
	return &GroupService{
		groupRepo:   groupRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// Create registers a new translation group and seats the creating actor as
// its leader in the same transaction. Admin only; fails if the actor already
// belongs to a group.
func (s *GroupService) Create(ctx context.Context, actor *models.Account, name string, description, avatar *string) (*models.Group, error) {
	if !authz.CanCreateGroup(actor) {
		return nil, apperrors.ErrPermissionDenied
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name cannot be empty", apperrors.ErrValidationFailed)
	}

	if actor.GroupID != nil {
		return nil, apperrors.ErrAlreadyInOtherGroup
	}

	group := &models.Group{
		Name:        name,
		Description: description,
		Avatar:      avatar,
	}

	// The creator takes the leader seat, atomically with the group row
	if err := s.groupRepo.CreateWithLeader(ctx, group, actor.ID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("groupID", group.ID).
		Int64("leaderID", actor.ID).
		Msg("Group created")

	return group, nil
}

// Get returns the group with the given ID
func (s *GroupService) Get(ctx context.Context, id int64) (*models.Group, error) {
	return s.groupRepo.GetByID(ctx, id)
}

// List returns a page of groups
func (s *GroupService) List(ctx context.Context, offset, limit int) ([]*models.Group, error) {
	offset, limit = helpers.NormalizePagination(offset, limit)
	return s.groupRepo.List(ctx, offset, limit)
}

// Update applies description and avatar changes. Admin or group leader.
func (s *GroupService) Update(ctx context.Context, actor *models.Account, id int64, changes GroupChanges) (*models.Group, error) {
	if !authz.CanManageGroup(actor, id) {
		return nil, apperrors.ErrPermissionDenied
	}

	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.Description != nil {
		group.Description = changes.Description
	}
	if changes.Avatar != nil {
		group.Avatar = changes.Avatar
	}

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// Delete removes the group. Chapters, donates and story assignments go with
// it; member accounts are detached.
func (s *GroupService) Delete(ctx context.Context, actor *models.Account, id int64) error {
	if !authz.CanManageGroup(actor, id) {
		return apperrors.ErrPermissionDenied
	}

	if _, err := s.groupRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.groupRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().
		Int64("groupID", id).
		Int64("actorID", actor.ID).
		Msg("Group deleted")

	return nil
}

// AddMember attaches an account to the group as a regular member. Admin or
// group leader; an account already in another group is a conflict. Re-adding
// an account already in this group succeeds and leaves it with the member
// role.
func (s *GroupService) AddMember(ctx context.Context, actor *models.Account, groupID, accountID int64) error {
	if !authz.CanManageGroup(actor, groupID) {
		return apperrors.ErrPermissionDenied
	}

	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if account.GroupID != nil && *account.GroupID != groupID {
		return apperrors.ErrAlreadyInOtherGroup
	}

	member := models.GroupRoleMember
	account.GroupID = &groupID
	account.GroupRole = &member

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return err
	}

	s.logger.Info().
		Int64("groupID", groupID).
		Int64("accountID", accountID).
		Msg("Member added to group")

	return nil
}

// RemoveMember detaches an account from the group. Admin or group leader.
func (s *GroupService) RemoveMember(ctx context.Context, actor *models.Account, groupID, accountID int64) error {
	if !authz.CanManageGroup(actor, groupID) {
		return apperrors.ErrPermissionDenied
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if account.GroupID == nil || *account.GroupID != groupID {
		return apperrors.NewBadRequestError("account is not a member of this group")
	}

	account.GroupID = nil
	account.GroupRole = nil

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return err
	}

	s.logger.Info().
		Int64("groupID", groupID).
		Int64("accountID", accountID).
		Msg("Member removed from group")

	return nil
}
