package quality_test

import (
	"strings"
	"testing"

	"github.com/vaultry/triage/internal/categories"
	"github.com/vaultry/triage/internal/extraction"
	"github.com/vaultry/triage/internal/quality"
)

func TestAssess(t *testing.T) {
	t.Run("poor scan with no evidence", func(t *testing.T) {
		a := quality.Assess(0.55, categories.Invoice, extraction.Fields{})

		if a.Quality != quality.Low {
			t.Errorf("Quality = %s, want low", a.Quality)
		}
		if a.MaxAllowedConfidence != 0.5 {
			t.Errorf("MaxAllowedConfidence = %v, want 0.5", a.MaxAllowedConfidence)
		}
		if a.HasRequiredFields {
			t.Error("HasRequiredFields = true, want false")
		}
		if len(a.Reasons) != 2 {
			t.Fatalf("Reasons = %v, want 2 entries", a.Reasons)
		}
	})

	t.Run("moderate scan with evidence", func(t *testing.T) {
		fields := extraction.Fields{"amount": "120.00"}
		a := quality.Assess(0.7, categories.Invoice, fields)

		if a.Quality != quality.Medium {
			t.Errorf("Quality = %s, want medium", a.Quality)
		}
		if a.MaxAllowedConfidence != 0.8 {
			t.Errorf("MaxAllowedConfidence = %v, want 0.8", a.MaxAllowedConfidence)
		}
		if !a.HasRequiredFields {
			t.Error("HasRequiredFields = false, want true")
		}
	})

	t.Run("clean scan with evidence", func(t *testing.T) {
		fields := extraction.Fields{"invoiceNumber": "INV-991"}
		a := quality.Assess(0.92, categories.Invoice, fields)

		if a.Quality != quality.High {
			t.Errorf("Quality = %s, want high", a.Quality)
		}
		if a.MaxAllowedConfidence != 1.0 {
			t.Errorf("MaxAllowedConfidence = %v, want 1.0", a.MaxAllowedConfidence)
		}
		if len(a.Reasons) != 1 || !strings.Contains(a.Reasons[0], "good extraction quality") {
			t.Errorf("Reasons = %v, want single good-quality reason", a.Reasons)
		}
	})

	t.Run("missing fields alone caps at 0.7", func(t *testing.T) {
		a := quality.Assess(0.95, categories.Invoice, extraction.Fields{})

		if a.MaxAllowedConfidence != 0.7 {
			t.Errorf("MaxAllowedConfidence = %v, want 0.7", a.MaxAllowedConfidence)
		}
		if a.Quality != quality.Medium {
			t.Errorf("Quality = %s, want medium", a.Quality)
		}
	})

	t.Run("field rule skipped for uncategorizable documents", func(t *testing.T) {
		for _, c := range []categories.Category{categories.Other, categories.NeedsReview} {
			a := quality.Assess(0.95, c, extraction.Fields{})
			if a.MaxAllowedConfidence != 1.0 {
				t.Errorf("%s: MaxAllowedConfidence = %v, want 1.0", c, a.MaxAllowedConfidence)
			}
		}
	})

	t.Run("better scans never tighten the ceiling", func(t *testing.T) {
		fields := extraction.Fields{"amount": "50"}
		prev := 0.0
		for _, ocr := range []float64{0.3, 0.55, 0.65, 0.79, 0.8, 0.95} {
			a := quality.Assess(ocr, categories.Expense, fields)
			if a.MaxAllowedConfidence < prev {
				t.Fatalf("ceiling dropped from %v to %v at ocr %v", prev, a.MaxAllowedConfidence, ocr)
			}
			prev = a.MaxAllowedConfidence
		}
	})
}

func TestApplyGate(t *testing.T) {
	t.Run("caps overconfident classifier", func(t *testing.T) {
		gate := quality.ApplyGate(0.9, 0.55, categories.Invoice, extraction.Fields{})

		if gate.CappedConfidence != 0.5 {
			t.Errorf("CappedConfidence = %v, want 0.5", gate.CappedConfidence)
		}
		if !gate.WasLimited {
			t.Error("WasLimited = false, want true")
		}
	})

	t.Run("passes through confidence under the ceiling", func(t *testing.T) {
		gate := quality.ApplyGate(0.4, 0.55, categories.Invoice, extraction.Fields{})

		if gate.CappedConfidence != 0.4 {
			t.Errorf("CappedConfidence = %v, want 0.4", gate.CappedConfidence)
		}
		if gate.WasLimited {
			t.Error("WasLimited = true, want false")
		}
	})
}

func TestHasRequiredFields(t *testing.T) {
	t.Run("one corroborating field is enough", func(t *testing.T) {
		fields := extraction.Fields{"vendorName": "Acme"}
		if !quality.HasRequiredFields(categories.Invoice, fields) {
			t.Error("HasRequiredFields = false, want true")
		}
	})

	t.Run("generic fallback without a field table", func(t *testing.T) {
		fields := extraction.Fields{"documentNumber": "A-1"}
		if !quality.HasRequiredFields(categories.Other, fields) {
			t.Error("HasRequiredFields = false, want true")
		}
		if quality.HasRequiredFields(categories.Other, extraction.Fields{}) {
			t.Error("HasRequiredFields = true, want false")
		}
	})
}
