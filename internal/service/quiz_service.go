package service

import (
	"context"

	"school_planner_backend/internal/model"
	"school_planner_backend/pkg/monitoring"
)

type QuizService struct {
	ProgressRepo QuizProgressStore
}

func NewQuizService(progressRepo QuizProgressStore) *QuizService {
	return &QuizService{ProgressRepo: progressRepo}
}

func (s *QuizService) GetProgress(ctx context.Context, principalID string) (model.Option[model.QuizProgress], error) {
	return s.ProgressRepo.FindByPrincipal(ctx, principalID)
}

// SaveProgress overwrites the caller's record with the values computed by the client.
func (s *QuizService) SaveProgress(ctx context.Context, principalID string, progress model.QuizProgress) error {
	progress.PrincipalID = principalID
	if err := s.ProgressRepo.Save(ctx, &progress); err != nil {
		return err
	}
	monitoring.RecordMutation("quiz_progress", "save")
	return nil
}
