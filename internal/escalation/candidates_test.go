package escalation_test

import (
	"testing"

	"github.com/vaultry/triage/internal/categories"
	"github.com/vaultry/triage/internal/escalation"
)

func TestTopCandidates(t *testing.T) {
	t.Run("embedding disagreement widens the choice set", func(t *testing.T) {
		income := categories.Income
		got := escalation.TopCandidates(categories.Tax, 0.45, &income, 0.8, 0)

		if len(got) != 3 {
			t.Fatalf("candidates = %v, want 3", got)
		}
		// Sorted by confidence descending: income 0.8, tax 0.45, fallback 0.3.
		if got[0].Category != categories.Income || got[0].Confidence != 0.8 {
			t.Errorf("first = %+v, want income at 0.8", got[0])
		}
		if got[1].Category != categories.Tax || got[1].Confidence != 0.45 {
			t.Errorf("second = %+v, want tax at 0.45", got[1])
		}
		if got[2].Category != categories.NeedsReview || got[2].Confidence != 0.3 {
			t.Errorf("third = %+v, want needs_review at 0.3", got[2])
		}
	})

	t.Run("agreement collapses to primary plus fallback", func(t *testing.T) {
		tax := categories.Tax
		got := escalation.TopCandidates(categories.Tax, 0.45, &tax, 0.8, 0)

		if len(got) != 2 {
			t.Fatalf("candidates = %v, want 2", got)
		}
		if got[0].Category != categories.Tax || got[1].Category != categories.NeedsReview {
			t.Errorf("candidates = %v, want tax then needs_review", got)
		}
	})

	t.Run("no embedding match", func(t *testing.T) {
		got := escalation.TopCandidates(categories.Invoice, 0.6, nil, 0, 0)

		if len(got) != 2 {
			t.Fatalf("candidates = %v, want 2", got)
		}
		if got[0].Category != categories.Invoice {
			t.Errorf("first = %+v, want invoice", got[0])
		}
	})

	t.Run("needs_review primary is not duplicated", func(t *testing.T) {
		got := escalation.TopCandidates(categories.NeedsReview, 0.45, nil, 0, 0)

		if len(got) != 1 {
			t.Fatalf("candidates = %v, want a single entry", got)
		}
		if got[0].Confidence != 0.45 {
			t.Errorf("Confidence = %v, want the primary's 0.45", got[0].Confidence)
		}
	})

	t.Run("limit truncates after sorting", func(t *testing.T) {
		income := categories.Income
		got := escalation.TopCandidates(categories.Tax, 0.45, &income, 0.8, 2)

		if len(got) != 2 {
			t.Fatalf("candidates = %v, want 2", got)
		}
		if got[0].Category != categories.Income || got[1].Category != categories.Tax {
			t.Errorf("candidates = %v, want the two strongest", got)
		}
	})

	t.Run("stable order for tied confidence", func(t *testing.T) {
		income := categories.Income
		got := escalation.TopCandidates(categories.Tax, 0.3, &income, 0.3, 0)

		want := []categories.Category{categories.Tax, categories.Income, categories.NeedsReview}
		for i, c := range want {
			if got[i].Category != c {
				t.Errorf("candidates[%d] = %s, want %s", i, got[i].Category, c)
			}
		}
	})
}
