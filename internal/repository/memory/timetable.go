package memory

import (
	"context"
	"sort"
	"time"

	"school_planner_backend/internal/model"
	"school_planner_backend/internal/util"
)

type TimetableRepository struct {
	s *Store
}

func NewTimetableRepository(s *Store) *TimetableRepository {
	return &TimetableRepository{s: s}
}

func (r *TimetableRepository) Create(ctx context.Context, entry *model.TimetableEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextEntryID++
	now := time.Now()
	entry.ID = r.s.nextEntryID
	entry.CreatedAt = now
	entry.UpdatedAt = now
	r.s.timetable[entry.ID] = *entry
	return nil
}

func (r *TimetableRepository) collect(match func(model.TimetableEntry) bool) []model.TimetableEntry {
	entries := []model.TimetableEntry{}
	for _, e := range r.s.timetable {
		if match(e) {
			entries = append(entries, e)
		}
	}
	return entries
}

func (r *TimetableRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.TimetableEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := r.collect(func(e model.TimetableEntry) bool { return e.OwnerID == ownerID })
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (r *TimetableRepository) FindByOwnerAndDay(ctx context.Context, ownerID string, day model.Day) ([]model.TimetableEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := r.collect(func(e model.TimetableEntry) bool { return e.OwnerID == ownerID && e.Day == day })
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].StartTime.Minutes(), entries[j].StartTime.Minutes()
		if a != b {
			return a < b
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

func (r *TimetableRepository) FindByID(ctx context.Context, ownerID string, id uint64) (*model.TimetableEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.timetable[id]
	if !ok || e.OwnerID != ownerID {
		return nil, util.ErrEntryNotFound
	}
	return &e, nil
}

func (r *TimetableRepository) Update(ctx context.Context, entry *model.TimetableEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.timetable[entry.ID]
	if !ok || existing.OwnerID != entry.OwnerID {
		return util.ErrEntryNotFound
	}
	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = time.Now()
	r.s.timetable[entry.ID] = *entry
	return nil
}

func (r *TimetableRepository) Delete(ctx context.Context, ownerID string, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.timetable[id]
	if !ok || e.OwnerID != ownerID {
		return util.ErrEntryNotFound
	}
	delete(r.s.timetable, id)
	return nil
}
