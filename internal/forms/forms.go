// Package forms validates user input before it reaches the record store.
package forms

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"school_planner_backend/internal/model"
	"school_planner_backend/internal/util"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := util.RegisterCustomTags(v); err != nil {
		panic(err)
	}
	return v
}

// Errors maps a form field to what is wrong with it.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", util.NotBlankTag:
		return "is required"
	case util.WeekdayTag:
		return "must be a day of the week"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

type HomeworkForm struct {
	Title     string `validate:"required,notblank,max=255"`
	Subject   string `validate:"required,notblank,max=100"`
	Completed bool
	Due       time.Time
	Notes     string
}

func (f HomeworkForm) Validate() error {
	return check(f)
}

// Homework converts a validated form. Blank notes become absent.
func (f HomeworkForm) Homework() model.Homework {
	hw := model.Homework{
		Title:     strings.TrimSpace(f.Title),
		Subject:   strings.TrimSpace(f.Subject),
		Completed: f.Completed,
		DueDate:   f.Due.UnixNano(),
		Notes:     model.None[string](),
	}
	if notes := strings.TrimSpace(f.Notes); notes != "" {
		hw.Notes = model.Some(notes)
	}
	return hw
}

type TimetableForm struct {
	Day         string `validate:"required,weekday"`
	Subject     string `validate:"required,notblank,max=100"`
	StartHour   int    `validate:"min=0,max=23"`
	StartMinute int    `validate:"min=0,max=59"`
	EndHour     int    `validate:"min=0,max=23"`
	EndMinute   int    `validate:"min=0,max=59"`
	Location    string
}

// Validate checks ranges only. An end before the start is accepted.
func (f TimetableForm) Validate() error {
	return check(f)
}

func (f TimetableForm) Entry() model.TimetableEntry {
	day, _ := model.ParseDay(f.Day)
	entry := model.TimetableEntry{
		Day:       day,
		Subject:   strings.TrimSpace(f.Subject),
		StartTime: model.TimeOfDay{Hour: f.StartHour, Minute: f.StartMinute},
		EndTime:   model.TimeOfDay{Hour: f.EndHour, Minute: f.EndMinute},
		Location:  model.None[string](),
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		entry.Location = model.Some(loc)
	}
	return entry
}

type ProfileForm struct {
	Name string `validate:"required,notblank,max=100"`
}

func (f ProfileForm) Validate() error {
	return check(f)
}

// ParseClock reads "HH:MM". Range checks are left to Validate so that the
// error names the offending field.
func ParseClock(s string) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("time %q is not HH:MM", s)
	}
	return hour, minute, nil
}
