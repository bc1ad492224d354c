// Package quality implements the OCR quality gate. It converts raw
// extraction confidence and field-presence evidence into a confidence
// ceiling that caps how much trust is placed in the first-pass classifier's
// self-reported confidence, independent of what the classifier claims.
package quality

import (
	"fmt"

	"github.com/vaultry/triage/internal/categories"
	"github.com/vaultry/triage/internal/extraction"
)

// Level is a categorical assessment of extraction quality.
type Level string

// Extraction quality levels.
const (
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
)

// Rule thresholds for the assessment ladder.
const (
	lowOcrThreshold      = 0.6
	moderateOcrThreshold = 0.8
	lowOcrCeiling        = 0.5
	missingFieldsCeiling = 0.7
	moderateOcrCeiling   = 0.8
)

// Assessment is the per-attempt result of the quality gate. It is computed
// fresh for every classification attempt and never persisted.
type Assessment struct {
	OcrConfidence        float64  `json:"ocr_confidence"`
	HasRequiredFields    bool     `json:"has_required_fields"`
	MaxAllowedConfidence float64  `json:"max_allowed_confidence"`
	Quality              Level    `json:"quality"`
	Reasons              []string `json:"reasons"`
}

// GateResult reports the outcome of applying the quality ceiling to the
// classifier's self-reported confidence.
type GateResult struct {
	CappedConfidence float64    `json:"capped_confidence"`
	WasLimited       bool       `json:"was_limited"`
	Assessment       Assessment `json:"assessment"`
}

// HasRequiredFields reports whether the canonical field record carries at
// least one of the category's expected evidence fields. Categories without a
// field table fall back to generic identifier-or-date evidence. This is an
// OR-of-any check: one corroborating field is enough.
func HasRequiredFields(category categories.Category, fields extraction.Fields) bool {
	expected := categories.RequiredFields(category)
	if expected == nil {
		return fields.HasIdentifierOrDate()
	}
	return fields.HasAnyOf(expected)
}

// Assess runs the deterministic rule ladder over extraction evidence.
// Each rule only tightens the ceiling; triggered caps combine by minimum.
// Missing inputs are absent evidence, not errors — Assess cannot fail.
func Assess(ocrConfidence float64, category categories.Category, fields extraction.Fields) Assessment {
	a := Assessment{
		OcrConfidence:        ocrConfidence,
		HasRequiredFields:    HasRequiredFields(category, fields),
		MaxAllowedConfidence: 1.0,
		Quality:              High,
	}

	if ocrConfidence < lowOcrThreshold {
		a.MaxAllowedConfidence = min(a.MaxAllowedConfidence, lowOcrCeiling)
		a.Quality = Low
		a.Reasons = append(a.Reasons, fmt.Sprintf(
			"OCR confidence %.2f below %.2f threshold", ocrConfidence, lowOcrThreshold,
		))
	}

	if !a.HasRequiredFields && category != categories.Other && category != categories.NeedsReview {
		a.MaxAllowedConfidence = min(a.MaxAllowedConfidence, missingFieldsCeiling)
		a.Quality = atLeastMedium(a.Quality)
		a.Reasons = append(a.Reasons, fmt.Sprintf(
			"no expected fields extracted for category %q", category,
		))
	}

	if ocrConfidence >= lowOcrThreshold && ocrConfidence < moderateOcrThreshold {
		a.MaxAllowedConfidence = min(a.MaxAllowedConfidence, moderateOcrCeiling)
		a.Quality = atLeastMedium(a.Quality)
		a.Reasons = append(a.Reasons, fmt.Sprintf(
			"OCR confidence %.2f is moderate", ocrConfidence,
		))
	}

	if len(a.Reasons) == 0 {
		a.Reasons = []string{"good extraction quality"}
	}

	return a
}

// ApplyGate caps the classifier's self-reported confidence at the assessed
// ceiling. Pure function: no side effects beyond what callers choose to log.
func ApplyGate(aiConfidence, ocrConfidence float64, category categories.Category, fields extraction.Fields) GateResult {
	assessment := Assess(ocrConfidence, category, fields)
	capped := min(aiConfidence, assessment.MaxAllowedConfidence)

	return GateResult{
		CappedConfidence: capped,
		WasLimited:       capped < aiConfidence,
		Assessment:       assessment,
	}
}

// atLeastMedium downgrades High to Medium but never upgrades Low.
func atLeastMedium(q Level) Level {
	if q == High {
		return Medium
	}
	return q
}
