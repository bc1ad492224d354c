package extraction_test

import (
	"testing"

	"github.com/vaultry/triage/internal/extraction"
)

func TestNormalize(t *testing.T) {
	t.Run("raw keys translate through aliases", func(t *testing.T) {
		fields := extraction.Normalize(nil, map[string]any{
			"total":      "120.00",
			"invoice_id": "INV-42",
		})

		if !fields.Has("amount") {
			t.Error("missing amount from total alias")
		}
		if !fields.Has("invoiceNumber") {
			t.Error("missing invoiceNumber from invoice_id alias")
		}
	})

	t.Run("metadata wins over raw", func(t *testing.T) {
		fields := extraction.Normalize(
			map[string]any{"amount": "200.00"},
			map[string]any{"total": "120.00"},
		)

		if got := fields["amount"]; got != "200.00" {
			t.Errorf("amount = %q, want 200.00", got)
		}
	})

	t.Run("unknown raw keys carry over unchanged", func(t *testing.T) {
		fields := extraction.Normalize(nil, map[string]any{"customField": "x"})
		if !fields.Has("customField") {
			t.Error("missing customField")
		}
	})

	t.Run("blank and nil values are absent evidence", func(t *testing.T) {
		fields := extraction.Normalize(
			map[string]any{"amount": "  ", "vendorName": nil},
			nil,
		)
		if len(fields) != 0 {
			t.Errorf("fields = %v, want empty", fields)
		}
	})

	t.Run("numeric values stringify", func(t *testing.T) {
		fields := extraction.Normalize(
			map[string]any{"amount": 120.5, "taxYear": 2024},
			nil,
		)
		if got := fields["amount"]; got != "120.5" {
			t.Errorf("amount = %q, want 120.5", got)
		}
		if got := fields["taxYear"]; got != "2024" {
			t.Errorf("taxYear = %q, want 2024", got)
		}
	})

	t.Run("nil maps produce an empty record", func(t *testing.T) {
		fields := extraction.Normalize(nil, nil)
		if len(fields) != 0 {
			t.Errorf("fields = %v, want empty", fields)
		}
	})
}

func TestFieldChecks(t *testing.T) {
	fields := extraction.Fields{"dueDate": "2026-01-15"}

	if !fields.HasAnyOf([]string{"amount", "dueDate"}) {
		t.Error("HasAnyOf = false, want true")
	}
	if fields.HasAnyOf([]string{"amount", "vendorName"}) {
		t.Error("HasAnyOf = true, want false")
	}
	if !fields.HasIdentifierOrDate() {
		t.Error("HasIdentifierOrDate = false, want true")
	}
	if (extraction.Fields{}).HasIdentifierOrDate() {
		t.Error("HasIdentifierOrDate = true for empty record")
	}
}
