package quote

// Attribute paths
const (
	PathTitle       = "PersonalDetails.PolicyHolder.Title"
	PathGender      = "PersonalDetails.PolicyHolder.Gender"
	PathFirstName   = "PersonalDetails.PolicyHolder.FirstName"
	PathEmail       = "PersonalDetails.PolicyHolder.Email"
	PathDateOfBirth = "PersonalDetails.PolicyHolder.DateOfBirth"
	PathScale       = "PersonalDetails.Scale"
	PathState       = "PersonalDetails.State"

	PathHospitalCode = "ProductSelection.Hospital.Code"
	PathExtras       = "ProductSelection.Extras"

	PathIncomeTier            = "IncomeTier"
	PathApplyGovernmentRebate = "ApplyGovernmentRebate"
)

// Alias events re-emitted for consumers that do not track storage paths
const (
	EventHospitalCode = "HospitalCode"
	EventExtrasCode   = "ExtrasCode"
)

// priceAffecting lists the paths whose change requires a new price
var priceAffecting = map[string]bool{
	PathDateOfBirth:           true,
	PathScale:                 true,
	PathState:                 true,
	PathHospitalCode:          true,
	PathExtras:                true,
	PathIncomeTier:            true,
	PathApplyGovernmentRebate: true,
}

// IsPropertyPriceAffecting reports whether a change at path affects the price
func IsPropertyPriceAffecting(path string) bool {
	return priceAffecting[path]
}
