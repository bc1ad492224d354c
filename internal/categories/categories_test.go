package categories_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vaultry/triage/internal/categories"
)

func TestParse(t *testing.T) {
	t.Run("valid category", func(t *testing.T) {
		c, err := categories.Parse("invoice")
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if c != categories.Invoice {
			t.Errorf("Parse = %s, want invoice", c)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := categories.Parse("spreadsheet")
		if !errors.Is(err, categories.ErrInvalidCategory) {
			t.Errorf("err = %v, want ErrInvalidCategory", err)
		}
	})
}

func TestNormalize(t *testing.T) {
	if got := categories.Normalize("tax"); got != categories.Tax {
		t.Errorf("Normalize(tax) = %s, want tax", got)
	}
	if got := categories.Normalize("spreadsheet"); got != categories.NeedsReview {
		t.Errorf("Normalize(spreadsheet) = %s, want needs_review", got)
	}
	if got := categories.Normalize(""); got != categories.NeedsReview {
		t.Errorf("Normalize(empty) = %s, want needs_review", got)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	t.Run("valid value", func(t *testing.T) {
		var c categories.Category
		if err := json.Unmarshal([]byte(`"medical"`), &c); err != nil {
			t.Fatalf("Unmarshal error: %v", err)
		}
		if c != categories.Medical {
			t.Errorf("c = %s, want medical", c)
		}
	})

	t.Run("unknown value", func(t *testing.T) {
		var c categories.Category
		if err := json.Unmarshal([]byte(`"spreadsheet"`), &c); err == nil {
			t.Error("Unmarshal succeeded, want error")
		}
	})
}

func TestRelated(t *testing.T) {
	related := categories.Related(categories.Tax)
	want := map[categories.Category]bool{
		categories.Financial: true,
		categories.Income:    true,
	}
	if len(related) != len(want) {
		t.Fatalf("Related(tax) = %v, want financial and income", related)
	}
	for _, c := range related {
		if !want[c] {
			t.Errorf("unexpected related category %s", c)
		}
	}

	if got := categories.Related(categories.NeedsReview); len(got) != 0 {
		t.Errorf("Related(needs_review) = %v, want none", got)
	}
}

func TestRequiredFields(t *testing.T) {
	if fields := categories.RequiredFields(categories.Invoice); len(fields) == 0 {
		t.Error("RequiredFields(invoice) is empty")
	}
	if fields := categories.RequiredFields(categories.Other); fields != nil {
		t.Errorf("RequiredFields(other) = %v, want nil", fields)
	}
	if fields := categories.RequiredFields(categories.NeedsReview); fields != nil {
		t.Errorf("RequiredFields(needs_review) = %v, want nil", fields)
	}
}
