package models

// IndianStates is the fixed region list offered by the state selector and
// accepted by validation.
var IndianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand",
	"Karnataka", "Kerala", "Madhya Pradesh", "Maharashtra", "Manipur",
	"Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab",
	"Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura",
	"Uttar Pradesh", "Uttarakhand", "West Bengal",
	"Andaman and Nicobar Islands", "Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu", "Delhi",
	"Jammu and Kashmir", "Ladakh", "Lakshadweep", "Puducherry",
}

// EducationLevels is the fixed education selector list.
var EducationLevels = []string{
	"Below 10th", "10th Pass", "12th Pass", "Diploma",
	"Graduate", "Post Graduate", "Doctorate", "Other",
}

// VehicleTypeOptions are the vehicle tags offered when ownership is true.
var VehicleTypeOptions = []string{"Two Wheeler", "Four Wheeler", "Other"}

// IsValidState reports whether s is one of the enumerated regions.
func IsValidState(s string) bool {
	return contains(IndianStates, s)
}

// IsValidEducation reports whether s is one of the enumerated levels.
func IsValidEducation(s string) bool {
	return contains(EducationLevels, s)
}

// IsValidVehicleType reports whether s is an offered vehicle tag.
func IsValidVehicleType(s string) bool {
	return contains(VehicleTypeOptions, s)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
