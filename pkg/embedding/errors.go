package embedding

import "errors"

// Errors returned by the embedding system.
var (
	ErrEmptyInput      = errors.New("embedding input is empty")
	ErrProviderFailure = errors.New("embedding provider failure")
)
