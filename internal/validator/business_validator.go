package validator

import (
	"strings"

	"github.com/jjss-seva/registration-service/internal/models"
)

// Requirements describes which optional fields a form variant makes
// mandatory. One declarative table instead of parallel form copies.
type Requirements struct {
	AadhaarRequired   bool
	EducationRequired bool
	// DualAddress controls whether the permanent block is collected at
	// all; when false the submission is treated as same-as-present.
	DualAddress bool
}

var variantTable = map[models.FormVariant]Requirements{
	models.VariantFull: {
		AadhaarRequired:   true,
		EducationRequired: true,
		DualAddress:       true,
	},
	models.VariantBasic: {
		AadhaarRequired:   false,
		EducationRequired: false,
		DualAddress:       false,
	},
}

// RequirementsFor resolves the requirement set for a variant; unknown or
// empty variants fall back to the full form.
func RequirementsFor(variant models.FormVariant) (models.FormVariant, Requirements) {
	if req, ok := variantTable[variant]; ok {
		return variant, req
	}
	return models.VariantFull, variantTable[models.VariantFull]
}

// ValidateRegistrationCreate runs struct-tag validation plus the
// cross-field rules that depend on the whole record: variant-driven
// requiredness and the permanent-address-unless-same-as-present rule.
func (v *Validator) ValidateRegistrationCreate(req *RegistrationCreateRequest) ValidationErrors {
	var errors ValidationErrors

	errors = append(errors, v.Validate(req)...)

	_, reqs := RequirementsFor(req.Variant)

	if reqs.AadhaarRequired && strings.TrimSpace(req.Aadhaar) == "" {
		errors = append(errors, ValidationError{
			Field:   "aadhaar",
			Message: "is required",
			Rule:    "required",
		})
	}

	if reqs.EducationRequired && strings.TrimSpace(req.Education) == "" {
		errors = append(errors, ValidationError{
			Field:   "education",
			Message: "is required",
			Rule:    "required",
		})
	}

	if reqs.DualAddress && !req.SameAsPresent {
		errors = append(errors, v.validatePermanentAddress(req)...)
	}

	return errors
}

// validatePermanentAddress applies the present-address shape rules to each
// permanent sub-field independently.
func (v *Validator) validatePermanentAddress(req *RegistrationCreateRequest) ValidationErrors {
	var errors ValidationErrors

	if len(strings.TrimSpace(req.PermanentAddress)) < 10 {
		errors = append(errors, ValidationError{
			Field:   "permanent_address",
			Message: "must be at least 10 characters",
			Value:   req.PermanentAddress,
			Rule:    "min",
		})
	}
	if len(strings.TrimSpace(req.PermanentCity)) < 2 {
		errors = append(errors, ValidationError{
			Field:   "permanent_city",
			Message: "must be at least 2 characters",
			Value:   req.PermanentCity,
			Rule:    "min",
		})
	}
	if len(strings.TrimSpace(req.PermanentDistrict)) < 2 {
		errors = append(errors, ValidationError{
			Field:   "permanent_district",
			Message: "must be at least 2 characters",
			Value:   req.PermanentDistrict,
			Rule:    "min",
		})
	}
	if !models.IsValidState(req.PermanentState) {
		errors = append(errors, ValidationError{
			Field:   "permanent_state",
			Message: "must be one of the listed states",
			Value:   req.PermanentState,
			Rule:    "indian_state",
		})
	}
	if !pincodePattern.MatchString(req.PermanentPincode) {
		errors = append(errors, ValidationError{
			Field:   "permanent_pincode",
			Message: "must be 6 digits",
			Value:   req.PermanentPincode,
			Rule:    "pincode",
		})
	}

	return errors
}
