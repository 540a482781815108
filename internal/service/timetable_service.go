package service

import (
	"context"
	"strings"

	"school_planner_backend/internal/model"
	"school_planner_backend/internal/repository"
	"school_planner_backend/internal/util"
	"school_planner_backend/pkg/monitoring"
)

type TimetableService struct {
	TimetableRepo TimetableStore
}

func NewTimetableService(timetableRepo TimetableStore) *TimetableService {
	return &TimetableService{TimetableRepo: timetableRepo}
}

// normalizeEntry checks the fields one at a time. End before start is allowed.
func normalizeEntry(entry *model.TimetableEntry) error {
	entry.Subject = strings.TrimSpace(entry.Subject)
	if entry.Subject == "" {
		return util.ErrBlankField
	}
	if !entry.Day.Valid() {
		return util.ErrInvalidDay
	}
	if !entry.StartTime.Valid() || !entry.EndTime.Valid() {
		return util.ErrInvalidTime
	}
	if loc, ok := entry.Location.Get(); ok && strings.TrimSpace(loc) == "" {
		entry.Location = model.None[string]()
	}
	return nil
}

func (s *TimetableService) List(ctx context.Context, ownerID string) ([]model.TimetableEntry, error) {
	return s.TimetableRepo.FindByOwner(ctx, ownerID)
}

func (s *TimetableService) ListByDay(ctx context.Context, ownerID string, day model.Day) ([]model.TimetableEntry, error) {
	if !day.Valid() {
		return nil, util.ErrInvalidDay
	}
	return s.TimetableRepo.FindByOwnerAndDay(ctx, ownerID, day)
}

func (s *TimetableService) Get(ctx context.Context, ownerID string, id uint64) (*model.TimetableEntry, error) {
	return s.TimetableRepo.FindByID(ctx, ownerID, id)
}

func (s *TimetableService) Create(ctx context.Context, ownerID string, entry model.TimetableEntry) (uint64, error) {
	if err := normalizeEntry(&entry); err != nil {
		return 0, err
	}
	entry.ID = 0
	entry.OwnerID = ownerID
	if err := s.TimetableRepo.Create(ctx, &entry); err != nil {
		return 0, err
	}
	monitoring.RecordMutation(repository.KindTimetable, "create")
	return entry.ID, nil
}

func (s *TimetableService) Update(ctx context.Context, ownerID string, id uint64, entry model.TimetableEntry) error {
	if err := normalizeEntry(&entry); err != nil {
		return err
	}
	entry.ID = id
	entry.OwnerID = ownerID
	if err := s.TimetableRepo.Update(ctx, &entry); err != nil {
		return err
	}
	monitoring.RecordMutation(repository.KindTimetable, "update")
	return nil
}

func (s *TimetableService) Delete(ctx context.Context, ownerID string, id uint64) error {
	if err := s.TimetableRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	monitoring.RecordMutation(repository.KindTimetable, "delete")
	return nil
}
