package repository

import (
	"context"
	"errors"

	"school_planner_backend/internal/model"
	"school_planner_backend/internal/util"

	"gorm.io/gorm"
)

type TimetableRepository struct {
	DB    *gorm.DB
	Cache *ListCache
}

func NewTimetableRepository(db *gorm.DB, cache *ListCache) *TimetableRepository {
	return &TimetableRepository{DB: db, Cache: cache}
}

func (r *TimetableRepository) Create(ctx context.Context, entry *model.TimetableEntry) error {
	err := r.DB.WithContext(ctx).Create(entry).Error
	if err == nil {
		r.Cache.Invalidate(ctx, KindTimetable, entry.OwnerID)
	}
	return err
}

func (r *TimetableRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	stamp, hit := r.Cache.Get(ctx, KindTimetable, ownerID, &entries)
	if hit {
		for i := range entries {
			entries[i].OwnerID = ownerID
		}
		return entries, nil
	}

	entries = []model.TimetableEntry{}
	err := r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	r.Cache.Set(ctx, KindTimetable, ownerID, stamp, entries)
	return entries, nil
}

func (r *TimetableRepository) FindByOwnerAndDay(ctx context.Context, ownerID string, day model.Day) ([]model.TimetableEntry, error) {
	entries := []model.TimetableEntry{}
	err := r.DB.WithContext(ctx).
		Where("owner_id = ? AND day = ?", ownerID, day).
		Order("start_hour ASC, start_minute ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *TimetableRepository) FindByID(ctx context.Context, ownerID string, id uint64) (*model.TimetableEntry, error) {
	var entry model.TimetableEntry
	err := r.DB.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *TimetableRepository) Update(ctx context.Context, entry *model.TimetableEntry) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.TimetableEntry
		if err := tx.Where("id = ? AND owner_id = ?", entry.ID, entry.OwnerID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrEntryNotFound
			}
			return err
		}
		return tx.Model(&existing).
			Select("day", "subject", "start_hour", "start_minute", "end_hour", "end_minute", "location").
			Updates(entry).Error
	})
	if err == nil {
		r.Cache.Invalidate(ctx, KindTimetable, entry.OwnerID)
	}
	return err
}

func (r *TimetableRepository) Delete(ctx context.Context, ownerID string, id uint64) error {
	result := r.DB.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.TimetableEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrEntryNotFound
	}
	r.Cache.Invalidate(ctx, KindTimetable, ownerID)
	return nil
}
