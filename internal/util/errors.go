package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrHomeworkNotFound  = errors.New("homework not found")
	ErrEntryNotFound     = errors.New("timetable entry not found")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidDay        = errors.New("invalid day")
	ErrInvalidTime       = errors.New("hour must be 0-23 and minute 0-59")
	ErrBlankField        = errors.New("required field is blank")
)
