package service

import (
	"context"
	"strings"

	"school_planner_backend/internal/model"
	"school_planner_backend/internal/repository"
	"school_planner_backend/internal/util"
	"school_planner_backend/pkg/monitoring"
)

type HomeworkService struct {
	HomeworkRepo HomeworkStore
}

func NewHomeworkService(homeworkRepo HomeworkStore) *HomeworkService {
	return &HomeworkService{HomeworkRepo: homeworkRepo}
}

func normalizeHomework(hw *model.Homework) error {
	hw.Title = strings.TrimSpace(hw.Title)
	hw.Subject = strings.TrimSpace(hw.Subject)
	if hw.Title == "" || hw.Subject == "" {
		return util.ErrBlankField
	}
	if notes, ok := hw.Notes.Get(); ok && strings.TrimSpace(notes) == "" {
		hw.Notes = model.None[string]()
	}
	return nil
}

func (s *HomeworkService) List(ctx context.Context, ownerID string) ([]model.Homework, error) {
	return s.HomeworkRepo.FindByOwner(ctx, ownerID)
}

func (s *HomeworkService) Get(ctx context.Context, ownerID string, id uint64) (*model.Homework, error) {
	return s.HomeworkRepo.FindByID(ctx, ownerID, id)
}

// Create stores a new item and returns the id the store assigned. Any id on
// the input is discarded.
func (s *HomeworkService) Create(ctx context.Context, ownerID string, hw model.Homework) (uint64, error) {
	if err := normalizeHomework(&hw); err != nil {
		return 0, err
	}
	hw.ID = 0
	hw.OwnerID = ownerID
	if err := s.HomeworkRepo.Create(ctx, &hw); err != nil {
		return 0, err
	}
	monitoring.RecordMutation(repository.KindHomework, "create")
	return hw.ID, nil
}

// Update replaces every field of the item; the id argument wins over hw.ID.
func (s *HomeworkService) Update(ctx context.Context, ownerID string, id uint64, hw model.Homework) error {
	if err := normalizeHomework(&hw); err != nil {
		return err
	}
	hw.ID = id
	hw.OwnerID = ownerID
	if err := s.HomeworkRepo.Update(ctx, &hw); err != nil {
		return err
	}
	monitoring.RecordMutation(repository.KindHomework, "update")
	return nil
}

func (s *HomeworkService) Delete(ctx context.Context, ownerID string, id uint64) error {
	if err := s.HomeworkRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	monitoring.RecordMutation(repository.KindHomework, "delete")
	return nil
}
