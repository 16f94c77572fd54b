package util

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidValue is returned when a parsed answer fails its type's validity rule.
	ErrInvalidValue = errors.New("invalid value")
	// ErrUnparseableValue is returned when a raw answer cannot be converted to its target type.
	ErrUnparseableValue = errors.New("unparseable value")
	// ErrValueAlreadyAssigned guards single-assignment answer strategies.
	ErrValueAlreadyAssigned = errors.New("value already assigned")
	ErrInvalidReference     = errors.New("invalid reference")
	ErrInvalidStatus        = errors.New("invalid assessment status")
	// ErrInvalidStatusTransition is returned for moves outside the lifecycle graph.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidOptionCatalog    = errors.New("invalid option catalog")
	// ErrStaleTemporal flags answer timestamps too far in the future.
	ErrStaleTemporal = errors.New("answeredAt is too far in the future")
	// ErrUnknownQuestionType is a configuration fault: no strategy or calculator is registered for the tag.
	ErrUnknownQuestionType = errors.New("unknown question type")
	// ErrMatrixLocked rejects catalog edits once a matrix has been locked for distribution.
	ErrMatrixLocked = errors.New("assessment matrix is locked")
)

// ValueError carries the offending raw answer of an invalid or unparseable value.
type ValueError struct {
	Kind   error
	Raw    string
	Reason string
}

func (e *ValueError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %q", e.Kind, e.Raw)
	}
	return fmt.Sprintf("%s: %q (%s)", e.Kind, e.Raw, e.Reason)
}

func (e *ValueError) Unwrap() error { return e.Kind }

func InvalidValue(raw, reason string) error {
	return &ValueError{Kind: ErrInvalidValue, Raw: raw, Reason: reason}
}

func UnparseableValue(raw, reason string) error {
	return &ValueError{Kind: ErrUnparseableValue, Raw: raw, Reason: reason}
}

// ReferenceError names a referenced entity that does not exist for the caller.
type ReferenceError struct {
	Entity string
	ID     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *ReferenceError) Unwrap() error { return ErrInvalidReference }

func NotFound(entity, id string) error {
	return &ReferenceError{Entity: entity, ID: id}
}

type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidStatusTransition }

type OptionCatalogError struct {
	Reason string
}

func (e *OptionCatalogError) Error() string {
	return "invalid option catalog: " + e.Reason
}

func (e *OptionCatalogError) Unwrap() error { return ErrInvalidOptionCatalog }

func InvalidOptionCatalog(format string, args ...any) error {
	return &OptionCatalogError{Reason: fmt.Sprintf(format, args...)}
}

type TemporalError struct {
	AnsweredAt time.Time
	Limit      time.Time
}

func (e *TemporalError) Error() string {
	return fmt.Sprintf("answeredAt %s is after the accepted limit %s",
		e.AnsweredAt.Format(time.RFC3339), e.Limit.Format(time.RFC3339))
}

func (e *TemporalError) Unwrap() error { return ErrStaleTemporal }

// StatusError reports a status name outside the known set.
type StatusError struct {
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid assessment status %q", e.Status)
}

func (e *StatusError) Unwrap() error { return ErrInvalidStatus }

// UnknownQuestionType reports a question type without a registered implementation.
func UnknownQuestionType(tag string) error {
	return fmt.Errorf("%w: %q", ErrUnknownQuestionType, tag)
}

// MatrixLocked reports an edit attempted on the locked matrix id.
func MatrixLocked(id string) error {
	return fmt.Errorf("%w: %s", ErrMatrixLocked, id)
}
