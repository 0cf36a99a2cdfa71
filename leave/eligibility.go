package leave

// =============================================================================
// GENDER-BASED ELIGIBILITY
// =============================================================================

// Leave-type codes carrying a gender restriction.
const (
	CodeMaternity = "maternity"
	CodePaternity = "paternity"
)

// Eligible reports whether a user of the given gender may use a leave
// type. "maternity" is restricted to female users and "paternity" to
// male users; every other code is unrestricted.
//
// An unrecognized gender value is ineligible for BOTH restricted codes.
// This is the conservative default: a missing or malformed profile
// never unlocks a restricted type.
func Eligible(gender Gender, code string) bool {
	switch code {
	case CodeMaternity:
		return gender == GenderFemale
	case CodePaternity:
		return gender == GenderMale
	default:
		return true
	}
}
