package repository

import (
	"context"
	"errors"

	"school_planner_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizProgressRepository struct {
	DB *gorm.DB
}

func NewQuizProgressRepository(db *gorm.DB) *QuizProgressRepository {
	return &QuizProgressRepository{DB: db}
}

func (r *QuizProgressRepository) FindByPrincipal(ctx context.Context, principalID string) (model.Option[model.QuizProgress], error) {
	var progress model.QuizProgress
	err := r.DB.WithContext(ctx).Where("principal_id = ?", principalID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.None[model.QuizProgress](), nil
	}
	if err != nil {
		return model.None[model.QuizProgress](), err
	}
	return model.Some(progress), nil
}

func (r *QuizProgressRepository) Save(ctx context.Context, progress *model.QuizProgress) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "principal_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"attempts_count", "best_score", "last_score", "updated_at"}),
	}).Create(progress).Error
}
