package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// looseEmailPattern accepts anything shaped like x@y.z, the same rule the
// mobile forms apply before submitting
var looseEmailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so clients can attach messages to inputs
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("email_loose", func(fl validator.FieldLevel) bool {
		return looseEmailPattern.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	validate.RegisterValidation("trimmin", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len([]rune(strings.TrimSpace(fl.Field().String()))) >= n
	})
}

// ValidateRequest validates a struct against its validation tags
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// DecodeAndValidate decodes JSON request body and validates it
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return ValidateRequest(v)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldMessages overrides the generic message for a field and rule
var fieldMessages = map[string]string{
	"email.required":                "Email is required",
	"email.email_loose":             "Please enter a valid email address",
	"password.required":             "Password is required",
	"password.min":                  "Password must be at least 6 characters",
	"full_name.notblank":            "Full name is required",
	"full_name.trimmin":             "Full name must be at least 2 characters",
	"confirm_password.required":     "Please confirm your password",
	"confirm_password.eqfield":      "Passwords do not match",
	"new_password.required":         "Password is required",
	"new_password.min":              "Password must be at least 6 characters",
	"confirm_new_password.required": "Please confirm your password",
	"confirm_new_password.eqfield":  "Passwords do not match",
	"quantity.min":                  "Quantity must be at least 1",
	"quantity.max":                  "Quantity must be at most 99",
}

// FormatValidationErrors converts validator errors to a readable format
func FormatValidationErrors(err error) []ValidationError {
	var result []ValidationError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			result = append(result, ValidationError{
				Field:   e.Field(),
				Message: getErrorMessage(e),
			})
		}
	}

	return result
}

func getErrorMessage(e validator.FieldError) string {
	if msg, ok := fieldMessages[e.Field()+"."+e.Tag()]; ok {
		return msg
	}

	switch e.Tag() {
	case "required", "notblank":
		return "This field is required"
	case "email", "email_loose":
		return "Invalid email format"
	case "min", "trimmin":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "eqfield":
		return "Value must match " + e.Param()
	case "oneof":
		return "Value must be one of " + e.Param()
	case "gte":
		return "Value must be greater than or equal to " + e.Param()
	case "lte":
		return "Value must be less than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}
