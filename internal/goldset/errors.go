package goldset

import (
	"errors"
	"net/http"
)

// Domain errors for gold set operations.
var (
	ErrNotFound        = errors.New("gold set example not found")
	ErrDuplicate       = errors.New("near-duplicate example already stored")
	ErrInvalidExample  = errors.New("invalid gold set example")
	ErrEmptyTextSample = errors.New("example text sample is empty")
)

// MapHTTPStatus maps gold set domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidExample) || errors.Is(err, ErrEmptyTextSample) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
