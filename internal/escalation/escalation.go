// Package escalation implements the two-pass escalation router. It decides
// whether a classification is trustworthy enough to finalize or warrants a
// second, more expensive classification pass with a narrowed, forced choice
// set. There are only two terminal outcomes: pass 1 accepted, or pass 2
// executed — pass 2 never escalates further.
package escalation

import (
	"strings"

	"github.com/vaultry/triage/internal/quality"
)

// Priority ranks how urgently an escalated case needs the second pass.
type Priority string

// Escalation priorities, ordered low < medium < high.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rule thresholds for the escalation ladder.
const (
	veryLowConfidence  = 0.5
	lowConfidence      = 0.7
	noSimilarity       = 0.4
	weakSimilarity     = 0.6
	conflictSimilarity = 0.6
	poorOcrConfidence  = 0.8
)

// Criteria are the decision inputs assembled from one document's confidence
// calculation.
type Criteria struct {
	Confidence      float64       `json:"confidence"`
	SimilarityScore float64       `json:"similarity_score"`
	ModelAgreement  bool          `json:"model_agreement"`
	OcrQuality      quality.Level `json:"ocr_quality"`
}

// Decision is the router's verdict. Reason joins every fired rule with "; ";
// Priority is the maximum severity any rule triggered.
type Decision struct {
	ShouldEscalate bool     `json:"should_escalate"`
	Reason         string   `json:"reason"`
	Priority       Priority `json:"priority"`
}

// Evaluate runs the escalation rule ladder. All rules are evaluated and
// their reasons accumulate; a later rule can raise the priority but never
// lower it. Pure function: it cannot fail.
func Evaluate(c Criteria) Decision {
	var reasons []string
	priority := PriorityLow

	if c.Confidence < veryLowConfidence {
		reasons = append(reasons, "Very low confidence")
		priority = raise(priority, PriorityHigh)
	} else if c.Confidence < lowConfidence {
		reasons = append(reasons, "Low confidence")
		priority = raise(priority, PriorityMedium)
	}

	if c.SimilarityScore < noSimilarity {
		reasons = append(reasons, "No similar documents in gold set")
		priority = raise(priority, PriorityMedium)
	} else if c.SimilarityScore < weakSimilarity {
		reasons = append(reasons, "Weak similarity to known documents")
		priority = raise(priority, PriorityMedium)
	}

	// Contradiction of strong evidence always escalates at top priority.
	if !c.ModelAgreement && c.SimilarityScore > conflictSimilarity {
		reasons = append(reasons, "AI category conflicts with similar documents")
		priority = raise(priority, PriorityHigh)
	}

	if c.OcrQuality == quality.Low && c.Confidence < poorOcrConfidence {
		reasons = append(reasons, "Poor OCR quality limits classification accuracy")
		priority = raise(priority, PriorityMedium)
	}

	if len(reasons) == 0 {
		return Decision{
			ShouldEscalate: false,
			Reason:         "Confidence meets threshold",
			Priority:       PriorityLow,
		}
	}

	return Decision{
		ShouldEscalate: true,
		Reason:         strings.Join(reasons, "; "),
		Priority:       priority,
	}
}

var severity = map[Priority]int{
	PriorityLow:    0,
	PriorityMedium: 1,
	PriorityHigh:   2,
}

func raise(current, proposed Priority) Priority {
	if severity[proposed] > severity[current] {
		return proposed
	}
	return current
}
