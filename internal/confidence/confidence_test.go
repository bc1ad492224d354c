package confidence_test

import (
	"math"
	"strings"
	"testing"

	"github.com/vaultry/triage/internal/confidence"
	"github.com/vaultry/triage/internal/quality"
	"github.com/vaultry/triage/internal/similarity"
)

func assessment(ocr float64, level quality.Level, hasFields bool) quality.Assessment {
	return quality.Assessment{
		OcrConfidence:     ocr,
		Quality:           level,
		HasRequiredFields: hasFields,
	}
}

func evidence(sim float64, compared int, agrees bool) *similarity.Result {
	return &similarity.Result{
		Similarity:       sim,
		ExamplesCompared: compared,
		AgreesWithAI:     agrees,
	}
}

func TestCalculate(t *testing.T) {
	t.Run("cold start falls back to the classifier", func(t *testing.T) {
		r := confidence.Calculate(assessment(0.95, quality.High, true), nil, 0.77)

		if r.Signals.Similarity != 0.77 || r.Signals.ModelAgreement != 0.77 {
			t.Errorf("Signals = %+v, want similarity and agreement at 0.77", r.Signals)
		}
		// 0.4*0.95 + 0.4*0.77 + 0.2*0.77 = 0.842
		if r.FinalConfidence != 0.84 {
			t.Errorf("FinalConfidence = %v, want 0.84", r.FinalConfidence)
		}
		if !r.CanAutoFile {
			t.Error("CanAutoFile = false, want true")
		}
		if r.WasAdjusted {
			t.Error("WasAdjusted = true for a 0.07 shift, want false")
		}
	})

	t.Run("zero examples compared is also cold start", func(t *testing.T) {
		r := confidence.Calculate(assessment(0.9, quality.High, true), evidence(0, 0, true), 0.6)

		if r.Signals.Similarity != 0.6 {
			t.Errorf("Similarity signal = %v, want the classifier's 0.6", r.Signals.Similarity)
		}
	})

	t.Run("strong corroborated evidence", func(t *testing.T) {
		r := confidence.Calculate(assessment(0.92, quality.High, true), evidence(0.9, 12, true), 0.9)

		// similarity 0.9 boosted by 1.1 for a deep example pool
		if math.Abs(r.Signals.Similarity-0.99) > 1e-9 {
			t.Errorf("Similarity signal = %v, want 0.99", r.Signals.Similarity)
		}
		if r.Signals.ModelAgreement != 1.0 {
			t.Errorf("ModelAgreement = %v, want 1.0", r.Signals.ModelAgreement)
		}
		if r.FinalConfidence != 0.96 {
			t.Errorf("FinalConfidence = %v, want 0.96", r.FinalConfidence)
		}
		if !r.CanAutoFile {
			t.Error("CanAutoFile = false, want true")
		}
	})

	t.Run("evidence boost never exceeds one", func(t *testing.T) {
		r := confidence.Calculate(assessment(0.9, quality.High, true), evidence(0.97, 15, true), 0.9)

		if r.Signals.Similarity != 1.0 {
			t.Errorf("Similarity signal = %v, want capped at 1.0", r.Signals.Similarity)
		}
	})

	t.Run("no boost under ten examples", func(t *testing.T) {
		r := confidence.Calculate(assessment(0.9, quality.High, true), evidence(0.9, 9, true), 0.9)

		if r.Signals.Similarity != 0.9 {
			t.Errorf("Similarity signal = %v, want unboosted 0.9", r.Signals.Similarity)
		}
	})

	t.Run("disagreement bands", func(t *testing.T) {
		cases := []struct {
			name string
			sim  float64
			want float64
		}{
			{"strong contradiction", 0.85, 0.2},
			{"moderate contradiction", 0.65, 0.4},
			{"weak contradiction", 0.5, 0.6},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				r := confidence.Calculate(assessment(0.9, quality.High, true), evidence(tc.sim, 5, false), 0.9)
				if r.Signals.ModelAgreement != tc.want {
					t.Errorf("ModelAgreement = %v, want %v", r.Signals.ModelAgreement, tc.want)
				}
			})
		}
	})

	t.Run("low final confidence blocks auto-filing", func(t *testing.T) {
		r := confidence.Calculate(assessment(0.55, quality.Low, false), nil, 0.9)

		// ocr 0.55*0.7 = 0.385; similarity and agreement fall back to 0.9
		if r.FinalConfidence != 0.69 {
			t.Errorf("FinalConfidence = %v, want 0.69", r.FinalConfidence)
		}
		if r.CanAutoFile {
			t.Error("CanAutoFile = true, want false")
		}
		if r.AutoFileBlockReason == nil || *r.AutoFileBlockReason != "Confidence too low (69% < 80%)" {
			t.Errorf("AutoFileBlockReason = %v, want the percentage message", r.AutoFileBlockReason)
		}
		if !r.WasAdjusted {
			t.Error("WasAdjusted = false for a 0.21 shift, want true")
		}
	})

	t.Run("missing fields block auto-filing above the threshold", func(t *testing.T) {
		r := confidence.Calculate(assessment(1.0, quality.Medium, false), evidence(1.0, 12, true), 0.9)

		// ocr 1.0*0.7 = 0.7; similarity capped at 1.0; agreement 1.0
		if r.FinalConfidence != 0.88 {
			t.Errorf("FinalConfidence = %v, want 0.88", r.FinalConfidence)
		}
		if r.CanAutoFile {
			t.Error("CanAutoFile = true, want false")
		}
		if r.AutoFileBlockReason == nil || *r.AutoFileBlockReason != "Required fields missing from extraction" {
			t.Errorf("AutoFileBlockReason = %v, want missing-fields message", r.AutoFileBlockReason)
		}
	})

	t.Run("the threshold itself auto-files", func(t *testing.T) {
		r := confidence.Calculate(assessment(0.75, quality.High, true), evidence(0.75, 5, true), 0.8)

		if r.FinalConfidence != 0.8 {
			t.Errorf("FinalConfidence = %v, want 0.80", r.FinalConfidence)
		}
		if !r.CanAutoFile {
			t.Error("CanAutoFile = false, want true at exactly the threshold")
		}
	})
}

func TestOcrSignal(t *testing.T) {
	t.Run("penalty applies before the clamp", func(t *testing.T) {
		r := confidence.Calculate(assessment(0.6, quality.Low, false), evidence(0.5, 5, true), 0.5)

		// 0.6*0.7 = 0.42, already under the low-quality clamp of 0.5
		if math.Abs(r.Signals.OcrQuality-0.42) > 1e-9 {
			t.Errorf("OcrQuality = %v, want 0.42", r.Signals.OcrQuality)
		}
	})

	t.Run("low quality clamps at 0.5", func(t *testing.T) {
		r := confidence.Calculate(assessment(0.9, quality.Low, true), evidence(0.5, 5, true), 0.5)

		if r.Signals.OcrQuality != 0.5 {
			t.Errorf("OcrQuality = %v, want 0.5", r.Signals.OcrQuality)
		}
	})

	t.Run("medium quality clamps at 0.8", func(t *testing.T) {
		r := confidence.Calculate(assessment(0.95, quality.Medium, true), evidence(0.5, 5, true), 0.5)

		if r.Signals.OcrQuality != 0.8 {
			t.Errorf("OcrQuality = %v, want 0.8", r.Signals.OcrQuality)
		}
	})
}

func TestExplain(t *testing.T) {
	t.Run("deterministic for equal input", func(t *testing.T) {
		r := confidence.Calculate(assessment(0.9, quality.High, true), evidence(0.85, 12, true), 0.7)

		if confidence.Explain(r) != confidence.Explain(r) {
			t.Error("Explain is not deterministic")
		}
	})

	t.Run("includes the block reason", func(t *testing.T) {
		r := confidence.Calculate(assessment(0.55, quality.Low, false), nil, 0.9)

		text := confidence.Explain(r)
		if !strings.Contains(text, "Auto-filing blocked: Confidence too low") {
			t.Errorf("Explain = %q, want the block reason", text)
		}
		if !strings.Contains(text, "Adjusted from the classifier's self-reported 0.90") {
			t.Errorf("Explain = %q, want the adjustment note", text)
		}
	})

	t.Run("marks auto-file eligibility", func(t *testing.T) {
		r := confidence.Calculate(assessment(0.95, quality.High, true), evidence(0.9, 12, true), 0.9)

		if !strings.Contains(confidence.Explain(r), "Eligible for auto-filing.") {
			t.Errorf("Explain = %q, want eligibility note", confidence.Explain(r))
		}
	})
}
