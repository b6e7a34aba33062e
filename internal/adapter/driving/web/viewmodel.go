package web

import (
	vm "github.com/ericfisherdev/passcheck/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/passcheck/internal/domain/model"
)

// toCheckResultViewModel converts a domain PasswordReport into display form.
func toCheckResultViewModel(report model.PasswordReport) *vm.CheckResultViewModel {
	suggestions := report.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}

	return &vm.CheckResultViewModel{
		Strength:      string(report.Strength),
		StrengthLabel: report.Strength.Label(),
		Suggestions:   suggestions,
		BreachStatus:  string(report.Breach),
		BreachMessage: report.Breach.Message(),
	}
}
