package classifications

import (
	"errors"
	"net/http"
)

// Domain errors for classification operations.
var (
	ErrNotFound          = errors.New("classification not found")
	ErrDuplicate         = errors.New("classification already exists")
	ErrNotExtracted      = errors.New("document has no extraction payload")
	ErrInvalidConfidence = errors.New("ai confidence must be between 0 and 1")
	ErrInvalidCorrection = errors.New("correction must carry a category or an inferable folder path")
)

// MapHTTPStatus maps classification domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNotExtracted) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidConfidence) || errors.Is(err, ErrInvalidCorrection) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
