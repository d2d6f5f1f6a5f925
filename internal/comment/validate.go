package comment

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// singleline rejects control characters, CR and LF included.
	_ = v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsControl)
	})
	return v
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when an Input fails validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "invalid comment: " + strings.Join(msgs, ", ")
}

// Validate checks the input as it would be stored, after trimming.
func (in Input) Validate() error {
	in.Normalize()

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating comment: %w", err)
	}

	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return ve
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "singleline":
		return fe.Field() + " must be a single line of text"
	case "min", "max":
		if fe.Field() == "rating" {
			return fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating)
		}
		return fe.Field() + " is too long"
	}
	return fe.Field() + " is invalid"
}
