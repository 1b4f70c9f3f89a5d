package validator

import (
	"testing"

	"github.com/jjss-seva/registration-service/internal/models"
)

func validRequest() *RegistrationCreateRequest {
	return &RegistrationCreateRequest{
		Variant:         models.VariantFull,
		FullName:        "Asha Verma",
		Mobile:          "9876543210",
		Email:           "asha.verma@example.com",
		Aadhaar:         "123456789012",
		PresentAddress:  "12 MG Road, Near City Park",
		PresentCity:     "Bengaluru",
		PresentDistrict: "Bengaluru Urban",
		PresentState:    "Karnataka",
		PresentPincode:  "560001",
		SameAsPresent:   true,
		HasVehicle:      false,
		Education:       "Graduate",
		Declaration:     true,
	}
}

func fieldFailed(errs ValidationErrors, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateRegistrationCreate_Valid(t *testing.T) {
	v := New()

	if errs := v.ValidateRegistrationCreate(validRequest()); errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRegistrationCreate_Mobile(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		mobile string
		valid  bool
	}{
		{"valid", "9876543210", true},
		{"leading digit below six", "5876543210", false},
		{"nine digits", "987654321", false},
		{"eleven digits", "98765432100", false},
		{"non numeric", "98765aaa10", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Mobile = tt.mobile

			errs := v.ValidateRegistrationCreate(req)
			if got := !fieldFailed(errs, "mobile"); got != tt.valid {
				t.Errorf("mobile %q: accepted=%v, want %v (errors: %v)", tt.mobile, got, tt.valid, errs)
			}
		})
	}
}

func TestValidateRegistrationCreate_Pincode(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		pincode string
		valid   bool
	}{
		{"valid", "560001", true},
		{"letter inside", "5600A1", false},
		{"five digits", "56001", false},
		{"seven digits", "5600011", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.PresentPincode = tt.pincode

			errs := v.ValidateRegistrationCreate(req)
			if got := !fieldFailed(errs, "presentpincode"); got != tt.valid {
				t.Errorf("pincode %q: accepted=%v, want %v (errors: %v)", tt.pincode, got, tt.valid, errs)
			}
		})
	}
}

func TestValidateRegistrationCreate_DeclarationBlocksSubmission(t *testing.T) {
	v := New()

	req := validRequest()
	req.Declaration = false

	errs := v.ValidateRegistrationCreate(req)
	if !fieldFailed(errs, "declaration") {
		t.Fatalf("expected declaration failure, got %v", errs)
	}
}

func TestValidateRegistrationCreate_PermanentAddressRules(t *testing.T) {
	v := New()

	t.Run("same as present skips permanent block", func(t *testing.T) {
		req := validRequest()
		req.SameAsPresent = true

		if errs := v.ValidateRegistrationCreate(req); errs.HasErrors() {
			t.Fatalf("expected no errors, got %v", errs)
		}
	})

	t.Run("each permanent field reported independently", func(t *testing.T) {
		req := validRequest()
		req.SameAsPresent = false

		errs := v.ValidateRegistrationCreate(req)
		for _, field := range []string{
			"permanent_address", "permanent_city", "permanent_district",
			"permanent_state", "permanent_pincode",
		} {
			if !fieldFailed(errs, field) {
				t.Errorf("expected failure for %s, got %v", field, errs)
			}
		}
	})

	t.Run("filled permanent block passes", func(t *testing.T) {
		req := validRequest()
		req.SameAsPresent = false
		req.PermanentAddress = "45 Beach Road, Fort Kochi"
		req.PermanentCity = "Kochi"
		req.PermanentDistrict = "Ernakulam"
		req.PermanentState = "Kerala"
		req.PermanentPincode = "682001"

		if errs := v.ValidateRegistrationCreate(req); errs.HasErrors() {
			t.Fatalf("expected no errors, got %v", errs)
		}
	})
}

func TestValidateRegistrationCreate_VariantTable(t *testing.T) {
	v := New()

	t.Run("full requires aadhaar and education", func(t *testing.T) {
		req := validRequest()
		req.Aadhaar = ""
		req.Education = ""

		errs := v.ValidateRegistrationCreate(req)
		if !fieldFailed(errs, "aadhaar") || !fieldFailed(errs, "education") {
			t.Fatalf("expected aadhaar and education failures, got %v", errs)
		}
	})

	t.Run("basic makes them optional", func(t *testing.T) {
		req := validRequest()
		req.Variant = models.VariantBasic
		req.Aadhaar = ""
		req.Education = ""
		req.SameAsPresent = false // basic collects a single address block

		if errs := v.ValidateRegistrationCreate(req); errs.HasErrors() {
			t.Fatalf("expected no errors, got %v", errs)
		}
	})

	t.Run("unknown variant falls back to full", func(t *testing.T) {
		variant, reqs := RequirementsFor("legacy")
		if variant != models.VariantFull || !reqs.AadhaarRequired {
			t.Fatalf("expected fallback to full, got %v %+v", variant, reqs)
		}
	})
}

func TestValidateRegistrationCreate_AadhaarShape(t *testing.T) {
	v := New()

	req := validRequest()
	req.Aadhaar = "12345"

	errs := v.ValidateRegistrationCreate(req)
	if !fieldFailed(errs, "aadhaar") {
		t.Fatalf("expected aadhaar shape failure, got %v", errs)
	}
}
