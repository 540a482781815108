// Package memory is a process-local Record Store backend. It keeps the same
// contracts as the gorm repositories and is used for development runs and tests.
package memory

import (
	"sync"

	"school_planner_backend/internal/model"
)

type Store struct {
	mu sync.RWMutex

	nextHomeworkID uint64
	nextEntryID    uint64
	nextUserID     uint

	homework  map[uint64]model.Homework
	timetable map[uint64]model.TimetableEntry
	users     map[string]model.User
	profiles  map[string]model.UserProfile
	progress  map[string]model.QuizProgress
}

func NewStore() *Store {
	return &Store{
		homework:  make(map[uint64]model.Homework),
		timetable: make(map[uint64]model.TimetableEntry),
		users:     make(map[string]model.User),
		profiles:  make(map[string]model.UserProfile),
		progress:  make(map[string]model.QuizProgress),
	}
}
