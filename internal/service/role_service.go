package service

import (
	"context"
	"errors"

	"school_planner_backend/internal/model"
	"school_planner_backend/internal/util"
)

// RoleService answers authorization questions from the stored role, so a
// role change takes effect without reissuing tokens.
type RoleService struct {
	UserRepo UserStore
}

func NewRoleService(userRepo UserStore) *RoleService {
	return &RoleService{UserRepo: userRepo}
}

// CallerRole returns guest for anonymous callers and for unknown principals.
func (s *RoleService) CallerRole(ctx context.Context, principalID string) (model.UserRole, error) {
	if principalID == "" {
		return model.Guest, nil
	}
	user, err := s.UserRepo.FindByPrincipal(ctx, principalID)
	if errors.Is(err, util.ErrUserNotFound) {
		return model.Guest, nil
	}
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *RoleService) IsAdmin(ctx context.Context, principalID string) (bool, error) {
	role, err := s.CallerRole(ctx, principalID)
	if err != nil {
		return false, err
	}
	return role == model.Admin, nil
}

func (s *RoleService) AssignRole(ctx context.Context, callerID, targetID string, role model.UserRole) error {
	if !role.Valid() {
		return util.ErrInvalidRole
	}
	isAdmin, err := s.IsAdmin(ctx, callerID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return util.ErrPermissionDenied
	}
	if _, err := s.UserRepo.FindByPrincipal(ctx, targetID); err != nil {
		return err
	}
	return s.UserRepo.UpdateRole(ctx, targetID, role)
}
