package casework

import (
	"fmt"

	"github.com/rentcourt/ftpr/app/models"
)

// Step states on the progress strip.
const (
	StepComplete  = "complete"
	StepCurrent   = "current"
	StepUpcoming  = "upcoming"
	StepCancelled = "cancelled"
)

// Step is one entry of the progress strip.
type Step struct {
	Status models.CaseStatus `json:"status"`
	Title  string            `json:"title"`
	State  string            `json:"state"`
}

// Action is a transition offered to the user, confirmed with Prompt.
type Action struct {
	To          models.CaseStatus `json:"to"`
	Label       string            `json:"label"`
	Prompt      string            `json:"confirm_prompt"`
	Destructive bool              `json:"destructive"`
}

// Workflow is everything a case page needs to render the status panel.
type Workflow struct {
	Current  models.StatusDetails `json:"current"`
	Steps    []Step               `json:"steps"`
	Actions  []Action             `json:"actions"`
	Terminal bool                 `json:"terminal"`
}

// progressPath is the happy path shown on the strip. CANCELLED is a branch
// off it rather than a step.
var progressPath = []models.CaseStatus{
	models.CaseStatusNoticeDraft,
	models.CaseStatusSubmitted,
	models.CaseStatusInProgress,
	models.CaseStatusComplete,
}

var actionLabels = map[models.CaseStatus]string{
	models.CaseStatusSubmitted:  "Submit case",
	models.CaseStatusInProgress: "Mark in progress",
	models.CaseStatusComplete:   "Mark complete",
	models.CaseStatusCancelled:  "Cancel case",
}

// BuildWorkflow computes the status panel for current. When disabled is
// set no actions are offered.
func BuildWorkflow(current models.CaseStatus, disabled bool) Workflow {
	w := Workflow{
		Current:  models.StatusInfo(current),
		Steps:    progressSteps(current),
		Actions:  []Action{},
		Terminal: current.IsTerminal(),
	}
	if disabled {
		return w
	}
	for _, to := range models.AllowedTransitions(current) {
		w.Actions = append(w.Actions, newAction(current, to))
	}
	return w
}

// ActionsFor filters the allowed transitions through allow, which encodes
// what the viewing role may do.
func ActionsFor(current models.CaseStatus, allow func(from, to models.CaseStatus) bool) Workflow {
	w := BuildWorkflow(current, false)
	offered := w.Actions[:0]
	for _, a := range w.Actions {
		if allow(current, a.To) {
			offered = append(offered, a)
		}
	}
	w.Actions = offered
	return w
}

func newAction(from, to models.CaseStatus) Action {
	label, ok := actionLabels[to]
	if !ok {
		label = models.StatusInfo(to).Title
	}
	prompt := fmt.Sprintf("Move this case from %s to %s?", models.StatusInfo(from).Title, models.StatusInfo(to).Title)
	if to == models.CaseStatusCancelled {
		prompt = "Cancel this case? Cancelled cases cannot be reopened."
	}
	return Action{
		To:          to,
		Label:       label,
		Prompt:      prompt,
		Destructive: to == models.CaseStatusCancelled,
	}
}

func progressSteps(current models.CaseStatus) []Step {
	pos := -1
	for i, s := range progressPath {
		if s == current {
			pos = i
		}
	}

	steps := make([]Step, len(progressPath))
	for i, s := range progressPath {
		state := StepUpcoming
		switch {
		case current == models.CaseStatusCancelled:
			state = StepCancelled
		case i < pos:
			state = StepComplete
		case i == pos && current == models.CaseStatusComplete:
			state = StepComplete
		case i == pos:
			state = StepCurrent
		}
		steps[i] = Step{Status: s, Title: models.StatusInfo(s).Title, State: state}
	}
	return steps
}
