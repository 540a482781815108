package model

import "time"

// Homework is one homework item. DueDate counts nanoseconds since the Unix epoch.
// swagger:model Homework
type Homework struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   string         `gorm:"size:36;index;not null" json:"-"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Subject   string         `gorm:"size:100;not null" json:"subject"`
	Completed bool           `gorm:"default:false" json:"completed"`
	DueDate   int64          `gorm:"index" json:"dueDate"`
	Notes     Option[string] `gorm:"type:text" json:"notes,omitzero"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
}

func (Homework) TableName() string {
	return "homework"
}

// Due converts DueDate to a time.Time.
func (h Homework) Due() time.Time {
	return time.Unix(0, h.DueDate)
}
