package repository

import (
	"context"
	"errors"
	"time"

	"school_planner_backend/internal/model"
	"school_planner_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateWithBootstrapRole stores a new principal. The registration that wins
// the single admin claim row becomes admin, the rest are regular users. The
// claim insert blocks on a concurrent holder until it commits or rolls back.
func (r *UserRepository) CreateWithBootstrapRole(ctx context.Context, user *model.User) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user.PrincipalID == "" {
			user.PrincipalID = model.NewPrincipalID()
		}
		claim := model.AdminClaim{Slot: model.AdminClaimSlot, PrincipalID: user.PrincipalID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&claim)
		if res.Error != nil {
			return res.Error
		}
		user.Role = model.RegularUser
		if res.RowsAffected == 1 {
			user.Role = model.Admin
		}
		return tx.Create(user).Error
	})
	return userWriteError(err)
}

// userWriteError maps a unique-index violation on users to the duplicate
// email error. The email is the only unique column a caller controls.
func userWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrEmailRegistered
	}
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByPrincipal(ctx context.Context, principalID string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("principal_id = ?", principalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, principalID string, role model.UserRole) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("principal_id = ?", principalID).
		Update("role", role).
		Error
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, principalID string, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("principal_id = ?", principalID).
		Update("last_login", at).
		Error
}
