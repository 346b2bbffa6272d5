package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/benvon/taskdesk/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	// These should never fail in normal operation, but log if they do
	if err := Validate.RegisterValidation("task_filter", validateTaskFilter); err != nil {
		panic(fmt.Sprintf("failed to register task_filter validator: %v", err))
	}
}

// validateTaskFilter validates that a string is a valid TaskFilter enum value
func validateTaskFilter(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch models.TaskFilter(value) {
	case models.TaskFilterAll, models.TaskFilterPending, models.TaskFilterCompleted:
		return true
	default:
		return false
	}
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	// Trim whitespace
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// TaskInput carries the user-supplied task fields through validation.
// Limits mirror what the store will accept for a single task.
type TaskInput struct {
	Title    string `validate:"required,max=500"`
	Notes    string `validate:"max=10000"`
	Location string `validate:"max=500"`
}

// ValidateTaskInput validates user-supplied task fields
func ValidateTaskInput(input TaskInput) error {
	err := Validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%s must not be empty", field)
		case "max":
			return fmt.Errorf("%s exceeds %s characters", field, fe.Param())
		}
	}
	return err
}

// ValidateTaskFilter validates a TaskFilter string value
func ValidateTaskFilter(value string) error {
	if err := Validate.Var(value, "required,task_filter"); err != nil {
		return fmt.Errorf("invalid filter: %s (must be 'all', 'pending', or 'completed')", value)
	}
	return nil
}
