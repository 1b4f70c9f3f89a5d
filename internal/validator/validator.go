package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jjss-seva/registration-service/internal/models"
)

var (
	mobilePattern  = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
	aadhaarPattern = regexp.MustCompile(`^\d{12}$`)
)

// ValidationError describes a single field-level failure.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

// ValidationErrors is the aggregate failure set for one request.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve))
	for i, e := range ve {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(messages, "; ")
}

// HasErrors reports whether any failure was recorded.
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Validator wraps go-playground/validator with the registration-specific
// rule set.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerRules()

	return v
}

// Validate runs struct-tag validation on any value.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (v *Validator) registerRules() {
	// 10 digits, first digit 6-9.
	v.validate.RegisterValidation("indian_mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})

	// Exactly 6 digits.
	v.validate.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return pincodePattern.MatchString(fl.Field().String())
	})

	// Exactly 12 digits.
	v.validate.RegisterValidation("aadhaar", func(fl validator.FieldLevel) bool {
		return aadhaarPattern.MatchString(fl.Field().String())
	})

	v.validate.RegisterValidation("indian_state", func(fl validator.FieldLevel) bool {
		return models.IsValidState(fl.Field().String())
	})

	v.validate.RegisterValidation("education_level", func(fl validator.FieldLevel) bool {
		return models.IsValidEducation(fl.Field().String())
	})

	v.validate.RegisterValidation("vehicle_type", func(fl validator.FieldLevel) bool {
		return models.IsValidVehicleType(fl.Field().String())
	})
}

// ToValidationErrors converts validator/v10 errors into ValidationErrors.
func ToValidationErrors(err error) ValidationErrors {
	var out ValidationErrors

	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			out = append(out, ValidationError{
				Field:   strings.ToLower(fe.Field()),
				Message: messageForTag(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
		return out
	}

	return ValidationErrors{{
		Field:   "request",
		Message: err.Error(),
		Rule:    "invalid",
	}}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "eq":
		return "must be accepted"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "indian_mobile":
		return "must be a valid 10-digit mobile number"
	case "pincode":
		return "must be 6 digits"
	case "aadhaar":
		return "must be 12 digits"
	case "indian_state":
		return "must be one of the listed states"
	case "education_level":
		return "must be one of the listed education levels"
	case "vehicle_type":
		return "is not a recognized vehicle type"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
