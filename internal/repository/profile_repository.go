package repository

import (
	"context"
	"errors"

	"school_planner_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindByPrincipal(ctx context.Context, principalID string) (model.Option[model.UserProfile], error) {
	var profile model.UserProfile
	err := r.DB.WithContext(ctx).Where("principal_id = ?", principalID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.None[model.UserProfile](), nil
	}
	if err != nil {
		return model.None[model.UserProfile](), err
	}
	return model.Some(profile), nil
}

// Save creates the profile or overwrites the existing one.
func (r *ProfileRepository) Save(ctx context.Context, profile *model.UserProfile) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "principal_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(profile).Error
}
