package models

import (
	"time"

	"gorm.io/datatypes"
)

// FormVariant selects which field-requirement set applies to a submission.
// The variants replace the near-duplicate form copies of the legacy app
// with a single configurable schema.
type FormVariant string

const (
	// VariantFull requires every field including aadhaar, education and
	// the dual address blocks.
	VariantFull FormVariant = "full"
	// VariantBasic makes aadhaar and education optional and collects a
	// single (present) address block.
	VariantBasic FormVariant = "basic"
)

// Registration is the only persisted entity: one row per successful
// submission. Rows are create-only; the dashboard reads them back but
// nothing updates or deletes them.
type Registration struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	ApplicationID string `json:"application_id" gorm:"uniqueIndex;not null;size:20"`

	FullName string `json:"full_name" gorm:"not null;size:100"`
	Mobile   string `json:"mobile" gorm:"not null;size:10"`
	Email    string `json:"email" gorm:"not null;size:255"`
	Aadhaar  string `json:"aadhaar" gorm:"size:12"`
	PhotoURL string `json:"photo_url" gorm:"size:500"`

	PresentAddress  string `json:"present_address" gorm:"not null"`
	PresentCity     string `json:"present_city" gorm:"size:100"`
	PresentDistrict string `json:"present_district" gorm:"size:100"`
	PresentState    string `json:"present_state" gorm:"size:100;index"`
	PresentPincode  string `json:"present_pincode" gorm:"size:6"`

	// The permanent block is copied from the present block at submit
	// time when SameAsPresent is set; the copy is not kept in sync
	// afterwards.
	PermanentAddress  string `json:"permanent_address"`
	PermanentCity     string `json:"permanent_city" gorm:"size:100"`
	PermanentDistrict string `json:"permanent_district" gorm:"size:100"`
	PermanentState    string `json:"permanent_state" gorm:"size:100"`
	PermanentPincode  string `json:"permanent_pincode" gorm:"size:6"`
	SameAsPresent     bool   `json:"same_as_present"`

	LocationLink *string `json:"location_link" gorm:"size:500"`

	HasVehicle bool `json:"has_vehicle"`
	// Empty unless HasVehicle is true.
	VehicleTypes datatypes.JSONSlice[string] `json:"vehicle_types"`

	Education string      `json:"education" gorm:"size:100"`
	Variant   FormVariant `json:"variant" gorm:"size:20;default:full"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Registration) TableName() string {
	return "registrations"
}
