package goldset_test

import (
	"strings"
	"testing"

	"github.com/vaultry/triage/internal/categories"
	"github.com/vaultry/triage/internal/goldset"
)

func TestInferCategoryFromPath(t *testing.T) {
	cases := []struct {
		path string
		want categories.Category
	}{
		{"Tax Documents/W-2", categories.Tax},
		{"Personal/Passport Scans", categories.Identity},
		{"Finance/Invoices/2026", categories.Invoice},
		{"Receipts/Office Supplies", categories.Expense},
		{"HR/Payroll", categories.Income},
		{"Bank Statements", categories.Financial},
		{"Legal/Contracts", categories.Legal},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got := goldset.InferCategoryFromPath(tc.path)
			if got == nil {
				t.Fatalf("InferCategoryFromPath(%q) = nil, want %s", tc.path, tc.want)
			}
			if *got != tc.want {
				t.Errorf("InferCategoryFromPath(%q) = %s, want %s", tc.path, *got, tc.want)
			}
		})
	}

	t.Run("specific keywords beat generic ones", func(t *testing.T) {
		// "tax" must win over "statement" in the same path.
		got := goldset.InferCategoryFromPath("Statements/Tax/2025")
		if got == nil || *got != categories.Tax {
			t.Errorf("InferCategoryFromPath = %v, want tax", got)
		}
	})

	t.Run("unmatched path", func(t *testing.T) {
		if got := goldset.InferCategoryFromPath("Miscellaneous/Stuff"); got != nil {
			t.Errorf("InferCategoryFromPath = %s, want nil", *got)
		}
	})
}

func TestInferSubtypeFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"Tax Documents/W-2", "w2"},
		{"Identity/Passport", "passport"},
		{"Identity/Drivers License", "drivers_license"},
		{"Finance/Bank Statement March", "bank_statement"},
		{"Travel/Boarding Passes", "boarding_pass"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got := goldset.InferSubtypeFromPath(tc.path)
			if got == nil {
				t.Fatalf("InferSubtypeFromPath(%q) = nil, want %s", tc.path, tc.want)
			}
			if *got != tc.want {
				t.Errorf("InferSubtypeFromPath(%q) = %s, want %s", tc.path, *got, tc.want)
			}
		})
	}

	t.Run("unmatched path", func(t *testing.T) {
		if got := goldset.InferSubtypeFromPath("Finance/Quarterly"); got != nil {
			t.Errorf("InferSubtypeFromPath = %s, want nil", *got)
		}
	})
}

func TestAddCommand(t *testing.T) {
	t.Run("sample truncates long text", func(t *testing.T) {
		cmd := goldset.AddCommand{OcrText: strings.Repeat("x", 1200)}

		if got := len(cmd.Sample()); got != goldset.TextSampleLength {
			t.Errorf("len(Sample) = %d, want %d", got, goldset.TextSampleLength)
		}
	})

	t.Run("short text passes through", func(t *testing.T) {
		cmd := goldset.AddCommand{OcrText: "short body"}

		if cmd.Sample() != "short body" {
			t.Errorf("Sample = %q, want unchanged text", cmd.Sample())
		}
	})

	t.Run("dedupe prefix bounds the sample", func(t *testing.T) {
		cmd := goldset.AddCommand{OcrText: strings.Repeat("y", 1200)}

		prefix := cmd.DedupePrefix()
		if len(prefix) != goldset.DedupePrefixLength {
			t.Errorf("len(DedupePrefix) = %d, want %d", len(prefix), goldset.DedupePrefixLength)
		}
		if !strings.HasPrefix(cmd.Sample(), prefix) {
			t.Error("DedupePrefix is not a prefix of Sample")
		}
	})
}
