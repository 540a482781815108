package service

import (
	"context"
	"time"

	"school_planner_backend/internal/model"
)

// The stores below are satisfied by both the gorm repositories and the
// in-memory backend. Missing or foreign rows surface as util.Err*NotFound.

type HomeworkStore interface {
	Create(ctx context.Context, hw *model.Homework) error
	FindByOwner(ctx context.Context, ownerID string) ([]model.Homework, error)
	FindByID(ctx context.Context, ownerID string, id uint64) (*model.Homework, error)
	Update(ctx context.Context, hw *model.Homework) error
	Delete(ctx context.Context, ownerID string, id uint64) error
}

type TimetableStore interface {
	Create(ctx context.Context, entry *model.TimetableEntry) error
	FindByOwner(ctx context.Context, ownerID string) ([]model.TimetableEntry, error)
	FindByOwnerAndDay(ctx context.Context, ownerID string, day model.Day) ([]model.TimetableEntry, error)
	FindByID(ctx context.Context, ownerID string, id uint64) (*model.TimetableEntry, error)
	Update(ctx context.Context, entry *model.TimetableEntry) error
	Delete(ctx context.Context, ownerID string, id uint64) error
}

type UserStore interface {
	CreateWithBootstrapRole(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByPrincipal(ctx context.Context, principalID string) (*model.User, error)
	UpdateRole(ctx context.Context, principalID string, role model.UserRole) error
	UpdateLastLogin(ctx context.Context, principalID string, at time.Time) error
}

type ProfileStore interface {
	FindByPrincipal(ctx context.Context, principalID string) (model.Option[model.UserProfile], error)
	Save(ctx context.Context, profile *model.UserProfile) error
}

type QuizProgressStore interface {
	FindByPrincipal(ctx context.Context, principalID string) (model.Option[model.QuizProgress], error)
	Save(ctx context.Context, progress *model.QuizProgress) error
}
