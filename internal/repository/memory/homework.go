package memory

import (
	"context"
	"sort"
	"time"

	"school_planner_backend/internal/model"
	"school_planner_backend/internal/util"
)

type HomeworkRepository struct {
	s *Store
}

func NewHomeworkRepository(s *Store) *HomeworkRepository {
	return &HomeworkRepository{s: s}
}

func (r *HomeworkRepository) Create(ctx context.Context, hw *model.Homework) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextHomeworkID++
	now := time.Now()
	hw.ID = r.s.nextHomeworkID
	hw.CreatedAt = now
	hw.UpdatedAt = now
	r.s.homework[hw.ID] = *hw
	return nil
}

func (r *HomeworkRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.Homework, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := []model.Homework{}
	for _, hw := range r.s.homework {
		if hw.OwnerID == ownerID {
			items = append(items, hw)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].DueDate != items[j].DueDate {
			return items[i].DueDate < items[j].DueDate
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r *HomeworkRepository) FindByID(ctx context.Context, ownerID string, id uint64) (*model.Homework, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	hw, ok := r.s.homework[id]
	if !ok || hw.OwnerID != ownerID {
		return nil, util.ErrHomeworkNotFound
	}
	return &hw, nil
}

func (r *HomeworkRepository) Update(ctx context.Context, hw *model.Homework) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.homework[hw.ID]
	if !ok || existing.OwnerID != hw.OwnerID {
		return util.ErrHomeworkNotFound
	}
	hw.CreatedAt = existing.CreatedAt
	hw.UpdatedAt = time.Now()
	r.s.homework[hw.ID] = *hw
	return nil
}

func (r *HomeworkRepository) Delete(ctx context.Context, ownerID string, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	hw, ok := r.s.homework[id]
	if !ok || hw.OwnerID != ownerID {
		return util.ErrHomeworkNotFound
	}
	delete(r.s.homework, id)
	return nil
}
