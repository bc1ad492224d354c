package escalation

import (
	"slices"

	"github.com/vaultry/triage/internal/categories"
)

const (
	// DefaultCandidateLimit bounds the pass 2 choice set.
	DefaultCandidateLimit = 3

	// fallbackConfidence is the nominal confidence assigned to the
	// guaranteed needs_review fallback candidate.
	fallbackConfidence = 0.3
)

// Candidate pairs a category with the confidence that nominated it.
type Candidate struct {
	Category   categories.Category `json:"category"`
	Confidence float64             `json:"confidence"`
}

// TopCandidates builds the constrained choice set for pass 2: the primary
// classifier's category, the embedding-suggested category when it differs,
// and needs_review as a guaranteed fallback. Deduplicated, sorted by
// confidence descending, truncated to limit.
func TopCandidates(
	primaryCategory categories.Category,
	primaryConfidence float64,
	embeddingCategory *categories.Category,
	embeddingSimilarity float64,
	limit int,
) []Candidate {
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}

	candidates := []Candidate{
		{Category: primaryCategory, Confidence: primaryConfidence},
	}

	if embeddingCategory != nil && *embeddingCategory != primaryCategory {
		candidates = append(candidates, Candidate{
			Category:   *embeddingCategory,
			Confidence: embeddingSimilarity,
		})
	}

	if !slices.ContainsFunc(candidates, func(c Candidate) bool {
		return c.Category == categories.NeedsReview
	}) {
		candidates = append(candidates, Candidate{
			Category:   categories.NeedsReview,
			Confidence: fallbackConfidence,
		})
	}

	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		switch {
		case a.Confidence > b.Confidence:
			return -1
		case a.Confidence < b.Confidence:
			return 1
		default:
			return 0
		}
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates
}
