package validator

import (
	"github.com/jjss-seva/registration-service/internal/models"
)

// RegistrationCreateRequest carries all form fields of one submission.
// Bound from multipart form data; the photo arrives as a separate file
// part and is checked by the submission service, not here.
//
// Requiredness of aadhaar, education and the permanent address block
// depends on the form variant and the same-as-present flag, so those
// fields are tagged omitempty and enforced by the business validator.
type RegistrationCreateRequest struct {
	Variant models.FormVariant `form:"variant" json:"variant"`

	FullName string `form:"full_name" json:"full_name" validate:"required,min=2,max=100"`
	Mobile   string `form:"mobile" json:"mobile" validate:"required,indian_mobile"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Aadhaar  string `form:"aadhaar" json:"aadhaar" validate:"omitempty,aadhaar"`

	PresentAddress  string `form:"present_address" json:"present_address" validate:"required,min=10"`
	PresentCity     string `form:"present_city" json:"present_city" validate:"required,min=2,max=100"`
	PresentDistrict string `form:"present_district" json:"present_district" validate:"required,min=2,max=100"`
	PresentState    string `form:"present_state" json:"present_state" validate:"required,indian_state"`
	PresentPincode  string `form:"present_pincode" json:"present_pincode" validate:"required,pincode"`

	SameAsPresent     bool   `form:"same_as_present" json:"same_as_present"`
	PermanentAddress  string `form:"permanent_address" json:"permanent_address"`
	PermanentCity     string `form:"permanent_city" json:"permanent_city"`
	PermanentDistrict string `form:"permanent_district" json:"permanent_district"`
	PermanentState    string `form:"permanent_state" json:"permanent_state"`
	PermanentPincode  string `form:"permanent_pincode" json:"permanent_pincode"`

	LocationLink string `form:"location_link" json:"location_link" validate:"omitempty,max=500"`

	HasVehicle   bool     `form:"has_vehicle" json:"has_vehicle"`
	VehicleTypes []string `form:"vehicle_types" json:"vehicle_types" validate:"omitempty,dive,vehicle_type"`

	Education string `form:"education" json:"education" validate:"omitempty,education_level"`

	// Tri-state on the wire: absent, false and true are distinct, and
	// only an explicit true passes.
	Declaration bool `form:"declaration" json:"declaration" validate:"required,eq=true"`
}

// LocationLinkRequest carries device coordinates captured by the client.
type LocationLinkRequest struct {
	Latitude  float64 `json:"lat" validate:"min=-90,max=90"`
	Longitude float64 `json:"lon" validate:"min=-180,max=180"`
}

// AdminLoginRequest carries the admin gate password.
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}
