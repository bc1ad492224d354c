package workflow

import "errors"

// Sentinel errors for pipeline execution. Only state plumbing can fail:
// the decision nodes themselves are pure or degrade internally.
var (
	ErrMissingState = errors.New("pipeline state missing from graph")
	ErrInvalidInput = errors.New("invalid pipeline input")
)
