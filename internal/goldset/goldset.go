// Package goldset implements the gold set domain for Triage: the append-only
// corpus of classification examples confirmed correct by a human action.
// Examples are the ground truth that the similarity engine compares new
// documents against, and the corpus grows from user corrections over time.
package goldset

import (
	"time"

	"github.com/google/uuid"

	"github.com/vaultry/triage/internal/categories"
)

const (
	// TextSampleLength bounds the stored text sample, keeping storage and
	// downstream embedding cost predictable.
	TextSampleLength = 500

	// DedupePrefixLength is the number of leading sample characters compared
	// when rejecting near-duplicate inserts.
	DedupePrefixLength = 100

	// DefaultExampleLimit caps example fetches when callers pass no limit.
	DefaultExampleLimit = 20

	// MinimumExamples is the default cold-start threshold: below this count
	// the similarity signal is not trusted for a category.
	MinimumExamples = 5
)

// Source identifies how an example entered the gold set.
type Source string

// Example sources.
const (
	SourceUserCorrection Source = "user_correction"
	SourceSeed           Source = "seed"
	SourceAdmin          Source = "admin"
)

// Example is a confirmed-correct document sample. Rows are append-only:
// created when a user files or corrects a document, never updated, never
// deleted by the system.
type Example struct {
	ID             uuid.UUID           `json:"id"`
	Category       categories.Category `json:"category"`
	Subtype        *string             `json:"subtype"`
	TextSample     string              `json:"text_sample"`
	FolderPath     string              `json:"folder_path"`
	Source         Source              `json:"source"`
	OrganizationID *uuid.UUID          `json:"organization_id"`
	UserID         uuid.UUID           `json:"user_id"`
	CreatedAt      time.Time           `json:"created_at"`
}

// AddCommand carries the data needed to record a confirmed example.
// OcrText is truncated to TextSampleLength before storage. A nil
// OrganizationID marks the example global, usable across all tenants.
// An empty Source defaults to SourceUserCorrection.
type AddCommand struct {
	Category       categories.Category `json:"category"`
	Subtype        *string             `json:"subtype"`
	OcrText        string              `json:"ocr_text"`
	FolderPath     string              `json:"folder_path"`
	UserID         uuid.UUID           `json:"user_id"`
	OrganizationID *uuid.UUID          `json:"organization_id"`
	Source         Source              `json:"source"`
}

// Sample returns the bounded text sample for storage.
func (c AddCommand) Sample() string {
	return truncate(c.OcrText, TextSampleLength)
}

// DedupePrefix returns the leading prefix used by the insert-time duplicate
// check.
func (c AddCommand) DedupePrefix() string {
	return truncate(c.Sample(), DedupePrefixLength)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
