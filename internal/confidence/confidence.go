// Package confidence implements the multi-signal confidence calculator: the
// single authoritative function that fuses OCR quality, gold set similarity,
// and model agreement into one final confidence score and one auto-file
// decision.
package confidence

import (
	"fmt"
	"math"

	"github.com/vaultry/triage/internal/quality"
	"github.com/vaultry/triage/internal/similarity"
)

// Fixed weighting: OCR quality and similarity are each twice as influential
// as raw model agreement. The pipeline trusts evidence over the classifier's
// self-assessment.
const (
	ocrWeight        = 0.40
	similarityWeight = 0.40
	agreementWeight  = 0.20
)

const (
	// AutoFileThreshold is the minimum final confidence for auto-filing.
	AutoFileThreshold = 0.80

	// adjustmentDelta is the divergence from the classifier's self-reported
	// confidence beyond which the result is flagged as adjusted.
	adjustmentDelta = 0.10

	// Similarity evidence boost: with boostMinExamples or more examples
	// compared, the similarity signal earns a small trust bonus.
	evidenceBoost    = 1.1
	boostMinExamples = 10

	// Disagreement bands: the stronger the contradicting match, the harder
	// the agreement signal drops.
	strongDisagreement   = 0.8
	moderateDisagreement = 0.6
)

const (
	missingFieldsPenalty = 0.7
	lowQualityClamp      = 0.5
	mediumQualityClamp   = 0.8
)

// Signals holds the three fused component scores, each in [0, 1].
type Signals struct {
	OcrQuality     float64 `json:"ocr_quality"`
	Similarity     float64 `json:"similarity"`
	ModelAgreement float64 `json:"model_agreement"`
}

// Result is the final decision artifact for one document's classification
// attempt. It annotates the document's classification record and is not
// independently persisted.
type Result struct {
	FinalConfidence      float64 `json:"final_confidence"`
	Signals              Signals `json:"signals"`
	CanAutoFile          bool    `json:"can_auto_file"`
	AutoFileBlockReason  *string `json:"auto_file_block_reason"`
	WasAdjusted          bool    `json:"was_adjusted"`
	OriginalAiConfidence float64 `json:"original_ai_confidence"`
}

// Calculate fuses the quality assessment, the similarity comparison, and the
// classifier's self-reported confidence. A nil or zero-evidence simResult is
// the cold-start state, a first-class input, not an error: both the
// similarity and agreement signals then fall back to aiConfidence, which
// deliberately collapses the weighting toward the classifier's own view when
// no gold set evidence exists.
func Calculate(assessment quality.Assessment, simResult *similarity.Result, aiConfidence float64) Result {
	signals := Signals{
		OcrQuality:     ocrScore(assessment),
		Similarity:     similarityScore(simResult, aiConfidence),
		ModelAgreement: agreementScore(simResult, aiConfidence),
	}

	final := round2(
		ocrWeight*signals.OcrQuality +
			similarityWeight*signals.Similarity +
			agreementWeight*signals.ModelAgreement,
	)

	result := Result{
		FinalConfidence:      final,
		Signals:              signals,
		OriginalAiConfidence: aiConfidence,
		WasAdjusted:          math.Abs(final-aiConfidence) > adjustmentDelta,
	}

	switch {
	case final < AutoFileThreshold:
		reason := fmt.Sprintf(
			"Confidence too low (%.0f%% < %.0f%%)",
			final*100, AutoFileThreshold*100,
		)
		result.AutoFileBlockReason = &reason
	case !assessment.HasRequiredFields:
		reason := "Required fields missing from extraction"
		result.AutoFileBlockReason = &reason
	default:
		result.CanAutoFile = true
	}

	return result
}

// ocrScore starts from the raw extraction confidence, applies the
// missing-fields penalty multiplicatively, then clamps by overall quality.
// Multiply first, clamp second.
func ocrScore(a quality.Assessment) float64 {
	score := a.OcrConfidence
	if !a.HasRequiredFields {
		score *= missingFieldsPenalty
	}

	switch a.Quality {
	case quality.Low:
		score = min(score, lowQualityClamp)
	case quality.Medium:
		score = min(score, mediumQualityClamp)
	}

	return score
}

// similarityScore trusts the classifier fully during cold start; with
// evidence it uses the engine's rescaled similarity, boosted slightly when
// the comparison covered a deep example pool.
func similarityScore(sim *similarity.Result, aiConfidence float64) float64 {
	if coldStart(sim) {
		return aiConfidence
	}

	score := sim.Similarity
	if sim.ExamplesCompared >= boostMinExamples {
		score = min(score*evidenceBoost, 1.0)
	}

	return score
}

// agreementScore is 1.0 when the best gold set match confirms the
// classifier's category. On disagreement it drops in proportion to how
// strong the contradicting match was; a weak contradiction is barely
// penalized.
func agreementScore(sim *similarity.Result, aiConfidence float64) float64 {
	if coldStart(sim) {
		return aiConfidence
	}

	if sim.AgreesWithAI {
		return 1.0
	}

	switch {
	case sim.Similarity > strongDisagreement:
		return 0.2
	case sim.Similarity > moderateDisagreement:
		return 0.4
	default:
		return 0.6
	}
}

func coldStart(sim *similarity.Result) bool {
	return sim == nil || sim.ExamplesCompared == 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
