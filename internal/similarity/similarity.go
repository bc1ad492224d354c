// Package similarity implements the embedding similarity engine: it measures
// how semantically close a document's text is to previously confirmed gold
// set examples of its own and related categories.
package similarity

import (
	"github.com/vaultry/triage/internal/categories"
)

// Result is the per-attempt outcome of a gold set comparison. Similarity is
// cosine similarity rescaled from [-1, 1] to [0, 1]; the engine is the single
// place that rescaling happens. A zero-example comparison returns the neutral
// result: similarity 0, AgreesWithAI true — with no evidence there is nothing
// to disagree with.
type Result struct {
	MatchedCategory  *categories.Category `json:"matched_category"`
	MatchedSubtype   *string              `json:"matched_subtype"`
	Similarity       float64              `json:"similarity"`
	ExamplesCompared int                  `json:"examples_compared"`
	AgreesWithAI     bool                 `json:"agrees_with_ai"`

	// Degraded carries the reason the comparison fell back to the neutral
	// result because a dependency failed (embedding provider, gold set
	// store). Empty means the result was computed from real evidence — or
	// that no evidence exists, which is a normal state, not a degradation.
	Degraded string `json:"degraded,omitempty"`
}

// Neutral returns the no-evidence result. degraded is empty for a genuine
// cold start and carries a reason when a dependency failure forced the
// fallback.
func Neutral(degraded string) *Result {
	return &Result{
		AgreesWithAI: true,
		Degraded:     degraded,
	}
}
