package validators

import (
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

var registerOnce sync.Once

// Register adds the custom tags to gin's binding validator.
func Register() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			RegisterOn(v)
		}
	})
}

func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return IsHHMM(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return IsISODate(fl.Field().String())
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	})
}

// IsHHMM accepts a 24h "HH:MM" time.
func IsHHMM(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsISODate accepts a "YYYY-MM-DD" calendar date.
func IsISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Describe turns a binding error into per-field messages. It returns nil
// for anything that is not a validation failure, e.g. malformed JSON.
func Describe(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "hhmm":
		return fe.Field() + " must be a time like 09:30"
	case "isodate":
		return fe.Field() + " must be a date like 2026-10-19"
	case "role":
		return fe.Field() + " must be customer, owner or admin"
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
