package model

import "time"

// UserProfile exists only once the caller has been onboarded.
// swagger:model UserProfile
type UserProfile struct {
	PrincipalID string    `gorm:"primaryKey;size:36" json:"-"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
