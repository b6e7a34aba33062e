package model

// PasswordReport is the combined result of a strength evaluation and a breach lookup.
type PasswordReport struct {
	Strength    Strength
	Suggestions []string
	Breach      BreachStatus
}
