package util

// Defaults of the assessment engine knobs.
const (
	DefaultFutureToleranceMinutes = 60
	DefaultOpenAnswerMaxLength    = 500
	MinOptionCount                = 2
	MaxOptionCount                = 64
)
