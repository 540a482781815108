package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	Admin       UserRole = "admin"
	RegularUser UserRole = "user"
	Guest       UserRole = "guest"
)

func (r UserRole) Valid() bool {
	switch r {
	case Admin, RegularUser, Guest:
		return true
	}
	return false
}

// User is an authenticated principal. Everything else in the store is keyed
// by PrincipalID.
// swagger:model User
type User struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	PrincipalID string    `gorm:"size:36;uniqueIndex;not null" json:"principal"`
	Email       string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	Role        UserRole  `gorm:"size:10;default:'user'" json:"role"`
	LastLogin   time.Time `json:"lastLogin"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.PrincipalID == "" {
		u.PrincipalID = NewPrincipalID()
	}
	return
}

// AdminClaim holds at most one row. The registration that inserts it is the
// bootstrap admin.
type AdminClaim struct {
	Slot        string    `gorm:"primaryKey;size:16"`
	PrincipalID string    `gorm:"size:36;not null"`
	CreatedAt   time.Time
}

const AdminClaimSlot = "admin"

func (AdminClaim) TableName() string {
	return "admin_claims"
}

func NewPrincipalID() string {
	return uuid.New().String()
}
