package model

import (
	"fmt"
	"strings"
	"time"
)

type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days is the week in display order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d Day) Valid() bool {
	for _, day := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// ParseDay accepts any letter case ("monday", "MONDAY").
func ParseDay(s string) (Day, error) {
	for _, day := range Days {
		if strings.EqualFold(s, string(day)) {
			return day, nil
		}
	}
	return "", fmt.Errorf("invalid day %q", s)
}

// DayOf maps a time.Weekday onto the week enumeration.
func DayOf(w time.Weekday) Day {
	if w == time.Sunday {
		return Sunday
	}
	return Days[int(w)-1]
}

// TimeOfDay is a wall-clock hour/minute pair. Hour is 0-23, Minute 0-59.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TimetableEntry is one lesson slot. EndTime is not checked against StartTime.
// swagger:model TimetableEntry
type TimetableEntry struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   string         `gorm:"size:36;index:idx_timetable_owner_day;not null" json:"-"`
	Day       Day            `gorm:"size:10;index:idx_timetable_owner_day;not null" json:"day"`
	Subject   string         `gorm:"size:100;not null" json:"subject"`
	StartTime TimeOfDay      `gorm:"embedded;embeddedPrefix:start_" json:"startTime"`
	EndTime   TimeOfDay      `gorm:"embedded;embeddedPrefix:end_" json:"endTime"`
	Location  Option[string] `gorm:"type:varchar(255)" json:"location,omitzero"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
}

func (TimetableEntry) TableName() string {
	return "timetable_entries"
}
