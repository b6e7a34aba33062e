package model

// Strength is the category assigned to a password by the strength evaluator.
type Strength string

const (
	StrengthVeryWeak Strength = "very_weak"
	StrengthWeak     Strength = "weak"
	StrengthMedium   Strength = "medium"
	StrengthStrong   Strength = "strong"
)

// Label returns the human-readable name shown on the check page.
func (s Strength) Label() string {
	switch s {
	case StrengthVeryWeak:
		return "Very Weak"
	case StrengthWeak:
		return "Weak"
	case StrengthMedium:
		return "Medium"
	case StrengthStrong:
		return "Strong"
	default:
		return string(s)
	}
}

// BreachStatus is the outcome of a breach lookup.
type BreachStatus string

const (
	BreachStatusFound       BreachStatus = "found"
	BreachStatusNotFound    BreachStatus = "not_found"
	BreachStatusUnavailable BreachStatus = "unavailable"
)

// Message returns the human-readable breach status shown on the check page.
func (s BreachStatus) Message() string {
	switch s {
	case BreachStatusFound:
		return "Found in Data Breaches"
	case BreachStatusNotFound:
		return "Not Found in Breaches"
	case BreachStatusUnavailable:
		return "Breach Check Unavailable (Connection Issue)"
	default:
		return string(s)
	}
}
