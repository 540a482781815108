package util

import (
	"errors"
	"strings"

	"school_planner_backend/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	NotBlankTag = "notblank"
	WeekdayTag  = "weekday"
)

// RegisterValidators adds the custom binding tags to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	return RegisterCustomTags(v)
}

func RegisterCustomTags(v *validator.Validate) error {
	if err := v.RegisterValidation(NotBlankTag, notBlank); err != nil {
		return err
	}
	return v.RegisterValidation(WeekdayTag, weekday)
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func weekday(fl validator.FieldLevel) bool {
	_, err := model.ParseDay(fl.Field().String())
	return err == nil
}
