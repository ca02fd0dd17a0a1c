package service

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sma-gradebook-api/internal/models"
)

const dateLayout = "2006-01-02"

// registerGradebookValidations installs the enum validators used by gradebook DTOs.
func registerGradebookValidations(v *validator.Validate) {
	_ = v.RegisterValidation("assignment_type", func(fl validator.FieldLevel) bool {
		return models.AssignmentType(strings.ToLower(fl.Field().String())).Valid()
	})
	_ = v.RegisterValidation("assignment_category", func(fl validator.FieldLevel) bool {
		return models.AssignmentCategory(strings.ToLower(fl.Field().String())).Valid()
	})
	_ = v.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(strings.ToUpper(fl.Field().String())).Valid()
	})
}

// parseDate accepts a calendar date or an RFC3339 timestamp and returns midnight UTC of that day.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// parseDueDate keeps the time of day when one is given.
func parseDueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(dateLayout, raw)
}
