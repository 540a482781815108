package service

import (
	"context"
	"strings"

	"school_planner_backend/internal/model"
	"school_planner_backend/internal/util"
	"school_planner_backend/pkg/monitoring"
)

type ProfileService struct {
	ProfileRepo ProfileStore
}

func NewProfileService(profileRepo ProfileStore) *ProfileService {
	return &ProfileService{ProfileRepo: profileRepo}
}

// Get returns None for a principal that has not been onboarded yet.
func (s *ProfileService) Get(ctx context.Context, principalID string) (model.Option[model.UserProfile], error) {
	return s.ProfileRepo.FindByPrincipal(ctx, principalID)
}

func (s *ProfileService) Save(ctx context.Context, principalID string, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return util.ErrBlankField
	}
	if err := s.ProfileRepo.Save(ctx, &model.UserProfile{PrincipalID: principalID, Name: name}); err != nil {
		return err
	}
	monitoring.RecordMutation("profile", "save")
	return nil
}
