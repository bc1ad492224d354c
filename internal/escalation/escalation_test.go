package escalation_test

import (
	"strings"
	"testing"

	"github.com/vaultry/triage/internal/escalation"
	"github.com/vaultry/triage/internal/quality"
)

func TestEvaluate(t *testing.T) {
	t.Run("confident classification passes", func(t *testing.T) {
		d := escalation.Evaluate(escalation.Criteria{
			Confidence:      0.85,
			SimilarityScore: 0.9,
			ModelAgreement:  true,
			OcrQuality:      quality.High,
		})

		if d.ShouldEscalate {
			t.Error("ShouldEscalate = true, want false")
		}
		if d.Reason != "Confidence meets threshold" {
			t.Errorf("Reason = %q", d.Reason)
		}
		if d.Priority != escalation.PriorityLow {
			t.Errorf("Priority = %s, want low", d.Priority)
		}
	})

	t.Run("poor scan with nothing similar fires three rules", func(t *testing.T) {
		d := escalation.Evaluate(escalation.Criteria{
			Confidence:      0.45,
			SimilarityScore: 0.3,
			ModelAgreement:  false,
			OcrQuality:      quality.Low,
		})

		if !d.ShouldEscalate {
			t.Fatal("ShouldEscalate = false, want true")
		}
		if d.Priority != escalation.PriorityHigh {
			t.Errorf("Priority = %s, want high", d.Priority)
		}

		want := []string{
			"Very low confidence",
			"No similar documents in gold set",
			"Poor OCR quality limits classification accuracy",
		}
		if d.Reason != strings.Join(want, "; ") {
			t.Errorf("Reason = %q, want %q", d.Reason, strings.Join(want, "; "))
		}
		// Disagreement at similarity 0.3 is not a conflict with strong evidence.
		if strings.Contains(d.Reason, "conflicts") {
			t.Errorf("Reason = %q fired the conflict rule on weak similarity", d.Reason)
		}
	})

	t.Run("disagreement with strong evidence is a high-priority conflict", func(t *testing.T) {
		d := escalation.Evaluate(escalation.Criteria{
			Confidence:      0.75,
			SimilarityScore: 0.85,
			ModelAgreement:  false,
			OcrQuality:      quality.High,
		})

		if !d.ShouldEscalate {
			t.Fatal("ShouldEscalate = false, want true")
		}
		if d.Reason != "AI category conflicts with similar documents" {
			t.Errorf("Reason = %q", d.Reason)
		}
		if d.Priority != escalation.PriorityHigh {
			t.Errorf("Priority = %s, want high", d.Priority)
		}
	})

	t.Run("borderline confidence escalates at medium", func(t *testing.T) {
		d := escalation.Evaluate(escalation.Criteria{
			Confidence:      0.65,
			SimilarityScore: 0.7,
			ModelAgreement:  true,
			OcrQuality:      quality.High,
		})

		if !d.ShouldEscalate {
			t.Fatal("ShouldEscalate = false, want true")
		}
		if d.Reason != "Low confidence" {
			t.Errorf("Reason = %q", d.Reason)
		}
		if d.Priority != escalation.PriorityMedium {
			t.Errorf("Priority = %s, want medium", d.Priority)
		}
	})

	t.Run("weak similarity alone escalates", func(t *testing.T) {
		d := escalation.Evaluate(escalation.Criteria{
			Confidence:      0.75,
			SimilarityScore: 0.5,
			ModelAgreement:  true,
			OcrQuality:      quality.High,
		})

		if !d.ShouldEscalate {
			t.Fatal("ShouldEscalate = false, want true")
		}
		if d.Reason != "Weak similarity to known documents" {
			t.Errorf("Reason = %q", d.Reason)
		}
	})

	t.Run("poor scan with confident result does not fire the ocr rule", func(t *testing.T) {
		d := escalation.Evaluate(escalation.Criteria{
			Confidence:      0.85,
			SimilarityScore: 0.9,
			ModelAgreement:  true,
			OcrQuality:      quality.Low,
		})

		if d.ShouldEscalate {
			t.Errorf("ShouldEscalate = true with reason %q, want false", d.Reason)
		}
	})

	t.Run("a later rule never lowers priority", func(t *testing.T) {
		// Very low confidence sets high; the similarity and ocr rules
		// propose medium afterwards.
		d := escalation.Evaluate(escalation.Criteria{
			Confidence:      0.2,
			SimilarityScore: 0.5,
			ModelAgreement:  true,
			OcrQuality:      quality.Low,
		})

		if d.Priority != escalation.PriorityHigh {
			t.Errorf("Priority = %s, want high", d.Priority)
		}
	})
}
