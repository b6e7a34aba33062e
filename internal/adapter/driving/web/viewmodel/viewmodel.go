// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// CheckResultViewModel holds the outcome of a password check.
type CheckResultViewModel struct {
	Strength      string // machine value, used as CSS class suffix
	StrengthLabel string
	Suggestions   []string
	BreachStatus  string // machine value, used as CSS class suffix
	BreachMessage string
}

// IndexViewModel holds everything the check page renders.
type IndexViewModel struct {
	Result       *CheckResultViewModel // nil before the first submission
	GuidanceHTML string                // sanitized HTML
}
