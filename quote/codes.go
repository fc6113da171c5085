package quote

// Hospital product codes, ordered from no cover to full cover with pregnancy
const (
	HospitalNone       = "None"
	HospitalBasic      = "BASIC"
	HospitalMid        = "MID"
	HospitalTopNoObs   = "TOP_NO_OBS"
	HospitalTopWithObs = "TOP_WITH_OBS"
)

// Extras product codes
const (
	ExtrasNone      = "None"
	ExtrasCore      = "Core"
	ExtrasCorePlus  = "CorePlus"
	ExtrasTop       = "Top"
	ExtrasWellbeing = "Wellbeing"

	// ExtrasBundles marks a composite bundle structure. It is not settable.
	ExtrasBundles = "Bundles"
)

// HospitalCodes lists the settable hospital codes in order
var HospitalCodes = []string{
	HospitalNone,
	HospitalBasic,
	HospitalMid,
	HospitalTopNoObs,
	HospitalTopWithObs,
}

// ExtrasCodes lists the settable extras codes in order
var ExtrasCodes = []string{
	ExtrasNone,
	ExtrasCore,
	ExtrasCorePlus,
	ExtrasTop,
	ExtrasWellbeing,
}

// Gender values derived from a title
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

func isMember(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
