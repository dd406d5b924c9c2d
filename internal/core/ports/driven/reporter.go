package driven

import "github.com/custodia-labs/docflow/internal/core/domain"

// StepReporter records pipeline progress for operators.
// Every stage transition is reported with the acting agent's name.
type StepReporter interface {
	// Step records a normal progress message.
	Step(agent, message string)

	// Fail records an error message.
	Fail(agent, message string)

	// Event dumps the full event record under a title.
	Event(title string, ev *domain.Event)
}
