package workflow

import (
	"assessment_backend/internal/model"
	"assessment_backend/internal/util"
	"strings"
)

var knownStatuses = map[model.AssessmentStatus]bool{
	model.StatusInvited:    true,
	model.StatusConfirmed:  true,
	model.StatusInProgress: true,
	model.StatusCompleted:  true,
}

// transitions is the lifecycle graph; COMPLETED has no way out.
var transitions = map[model.AssessmentStatus][]model.AssessmentStatus{
	model.StatusInvited:    {model.StatusConfirmed, model.StatusInProgress},
	model.StatusConfirmed:  {model.StatusInProgress},
	model.StatusInProgress: {model.StatusCompleted},
}

// ParseStatus resolves a status name, case-insensitively.
func ParseStatus(name string) (model.AssessmentStatus, error) {
	s := model.AssessmentStatus(strings.ToUpper(strings.TrimSpace(name)))
	if !knownStatuses[s] {
		return "", &util.StatusError{Status: name}
	}
	return s, nil
}

func CanTransition(from, to model.AssessmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a TransitionError naming both states when from -> to is not an edge.
func ValidateTransition(from, to model.AssessmentStatus) error {
	if !CanTransition(from, to) {
		return &util.TransitionError{From: string(from), To: string(to)}
	}
	return nil
}

// PathToCompleted lists the hops that take a respondent from s to COMPLETED.
func PathToCompleted(s model.AssessmentStatus) []model.AssessmentStatus {
	switch s {
	case model.StatusInvited, model.StatusConfirmed:
		return []model.AssessmentStatus{model.StatusInProgress, model.StatusCompleted}
	case model.StatusInProgress:
		return []model.AssessmentStatus{model.StatusCompleted}
	default:
		return nil
	}
}
