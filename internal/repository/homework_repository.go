package repository

import (
	"context"
	"errors"

	"school_planner_backend/internal/model"
	"school_planner_backend/internal/util"

	"gorm.io/gorm"
)

type HomeworkRepository struct {
	DB    *gorm.DB
	Cache *ListCache
}

func NewHomeworkRepository(db *gorm.DB, cache *ListCache) *HomeworkRepository {
	return &HomeworkRepository{DB: db, Cache: cache}
}

func (r *HomeworkRepository) Create(ctx context.Context, hw *model.Homework) error {
	err := r.DB.WithContext(ctx).Create(hw).Error
	if err == nil {
		r.Cache.Invalidate(ctx, KindHomework, hw.OwnerID)
	}
	return err
}

func (r *HomeworkRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.Homework, error) {
	var items []model.Homework
	stamp, hit := r.Cache.Get(ctx, KindHomework, ownerID, &items)
	if hit {
		for i := range items {
			items[i].OwnerID = ownerID
		}
		return items, nil
	}

	items = []model.Homework{}
	err := r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("due_date ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	r.Cache.Set(ctx, KindHomework, ownerID, stamp, items)
	return items, nil
}

func (r *HomeworkRepository) FindByID(ctx context.Context, ownerID string, id uint64) (*model.Homework, error) {
	var hw model.Homework
	err := r.DB.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&hw).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrHomeworkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &hw, nil
}

// Update overwrites every mutable column of an existing row owned by hw.OwnerID.
func (r *HomeworkRepository) Update(ctx context.Context, hw *model.Homework) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Homework
		if err := tx.Where("id = ? AND owner_id = ?", hw.ID, hw.OwnerID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrHomeworkNotFound
			}
			return err
		}
		return tx.Model(&existing).
			Select("title", "subject", "completed", "due_date", "notes").
			Updates(hw).Error
	})
	if err == nil {
		r.Cache.Invalidate(ctx, KindHomework, hw.OwnerID)
	}
	return err
}

func (r *HomeworkRepository) Delete(ctx context.Context, ownerID string, id uint64) error {
	result := r.DB.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Homework{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrHomeworkNotFound
	}
	r.Cache.Invalidate(ctx, KindHomework, ownerID)
	return nil
}
