package memory

import (
	"context"
	"time"

	"school_planner_backend/internal/model"
	"school_planner_backend/internal/util"
)

type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

func (r *UserRepository) CreateWithBootstrapRole(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return util.ErrEmailRegistered
		}
	}

	user.Role = model.RegularUser
	if len(r.s.users) == 0 {
		user.Role = model.Admin
	}
	if user.PrincipalID == "" {
		user.PrincipalID = model.NewPrincipalID()
	}
	r.s.nextUserID++
	now := time.Now()
	user.ID = r.s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.PrincipalID] = *user
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (r *UserRepository) FindByPrincipal(ctx context.Context, principalID string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[principalID]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, principalID string, role model.UserRole) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[principalID]
	if !ok {
		return util.ErrUserNotFound
	}
	u.Role = role
	r.s.users[principalID] = u
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, principalID string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if u, ok := r.s.users[principalID]; ok {
		u.LastLogin = at
		r.s.users[principalID] = u
	}
	return nil
}

type ProfileRepository struct {
	s *Store
}

func NewProfileRepository(s *Store) *ProfileRepository {
	return &ProfileRepository{s: s}
}

func (r *ProfileRepository) FindByPrincipal(ctx context.Context, principalID string) (model.Option[model.UserProfile], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if p, ok := r.s.profiles[principalID]; ok {
		return model.Some(p), nil
	}
	return model.None[model.UserProfile](), nil
}

func (r *ProfileRepository) Save(ctx context.Context, profile *model.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	if existing, ok := r.s.profiles[profile.PrincipalID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.s.profiles[profile.PrincipalID] = *profile
	return nil
}

type QuizProgressRepository struct {
	s *Store
}

func NewQuizProgressRepository(s *Store) *QuizProgressRepository {
	return &QuizProgressRepository{s: s}
}

func (r *QuizProgressRepository) FindByPrincipal(ctx context.Context, principalID string) (model.Option[model.QuizProgress], error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if p, ok := r.s.progress[principalID]; ok {
		return model.Some(p), nil
	}
	return model.None[model.QuizProgress](), nil
}

func (r *QuizProgressRepository) Save(ctx context.Context, progress *model.QuizProgress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	progress.UpdatedAt = time.Now()
	r.s.progress[progress.PrincipalID] = *progress
	return nil
}
