package application

import (
	"regexp"
	"strings"

	"github.com/ericfisherdev/passcheck/internal/domain/model"
)

// commonPasswords are rejected outright, compared lowercased.
var commonPasswords = map[string]struct{}{
	"123456":     {},
	"123456789":  {},
	"1234567890": {},
	"password":   {},
	"qwerty":     {},
	"111111":     {},
	"abc123":     {},
	"password1":  {},
	"12345":      {},
	"letmein":    {},
	"welcome":    {},
	"iloveyou":   {},
	"admin":      {},
	"root":       {},
}

// commonPasswordSuggestions is returned unchanged for every common password.
var commonPasswordSuggestions = []string{
	"Avoid using common passwords like '1234567890' or 'password'",
	"Choose a unique passphrase that does not appear in public password lists",
}

// strengthRule is one scoring predicate and the suggestion emitted when it fails.
type strengthRule struct {
	passes     func(string) bool
	suggestion string
}

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[@$!%*?&]`)
)

// MinPasswordLength is the length at which the length rule passes.
const MinPasswordLength = 8

// strengthRules are evaluated in order; suggestions keep this order.
var strengthRules = []strengthRule{
	{
		// Counted in Unicode code points, not bytes.
		passes:     func(s string) bool { return len([]rune(s)) >= MinPasswordLength },
		suggestion: "Use at least 8 Characters",
	},
	{passes: upperRe.MatchString, suggestion: "Add Uppercase Letters"},
	{passes: lowerRe.MatchString, suggestion: "Add Lowercase Letters"},
	{passes: digitRe.MatchString, suggestion: "Add Numbers"},
	{passes: specialRe.MatchString, suggestion: "Add Special Characters"},
}

// IsCommonPassword reports whether password appears in the weak-password list,
// ignoring case.
func IsCommonPassword(password string) bool {
	_, ok := commonPasswords[strings.ToLower(password)]
	return ok
}

// EvaluateStrength scores password against the fixed rule set and returns its
// category together with suggestions for every failed rule.
func EvaluateStrength(password string) (model.Strength, []string) {
	if IsCommonPassword(password) {
		suggestions := make([]string, len(commonPasswordSuggestions))
		copy(suggestions, commonPasswordSuggestions)
		return model.StrengthVeryWeak, suggestions
	}

	score := 0
	suggestions := []string{}
	for _, rule := range strengthRules {
		if rule.passes(password) {
			score++
			continue
		}
		suggestions = append(suggestions, rule.suggestion)
	}

	return strengthForScore(score), suggestions
}

// strengthForScore maps a 0-5 score to a category.
func strengthForScore(score int) model.Strength {
	switch {
	case score <= 2:
		return model.StrengthWeak
	case score == 3:
		return model.StrengthMedium
	default:
		return model.StrengthStrong
	}
}
