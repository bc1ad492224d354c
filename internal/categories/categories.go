// Package categories defines the closed document category taxonomy for Triage.
// It provides the category enum, the related-category adjacency table used for
// similarity cross-validation, and the per-category required-field tables
// consumed by the OCR quality gate.
package categories

import (
	"encoding/json"
	"slices"
)

// Category is one of a fixed, closed set of top-level document types.
type Category string

// Valid document categories.
const (
	Identity       Category = "identity"
	Financial      Category = "financial"
	Tax            Category = "tax"
	Income         Category = "income"
	Expense        Category = "expense"
	Invoice        Category = "invoice"
	Medical        Category = "medical"
	Insurance      Category = "insurance"
	Legal          Category = "legal"
	Property       Category = "property"
	Business       Category = "business"
	Employment     Category = "employment"
	Education      Category = "education"
	Certification  Category = "certification"
	Correspondence Category = "correspondence"
	Vehicle        Category = "vehicle"
	Personal       Category = "personal"
	Travel         Category = "travel"
	Technical      Category = "technical"
	NeedsReview    Category = "needs_review"
	Other          Category = "other"
)

var all = []Category{
	Identity,
	Financial,
	Tax,
	Income,
	Expense,
	Invoice,
	Medical,
	Insurance,
	Legal,
	Property,
	Business,
	Employment,
	Education,
	Certification,
	Correspondence,
	Vehicle,
	Personal,
	Travel,
	Technical,
	NeedsReview,
	Other,
}

// All returns the list of valid categories.
func All() []Category {
	return all
}

// Valid reports whether c is a member of the closed category set.
func Valid(c Category) bool {
	return slices.Contains(all, c)
}

// Parse validates a string as a known category.
// Returns ErrInvalidCategory if the value is not recognized.
func Parse(s string) (Category, error) {
	c := Category(s)
	if !Valid(c) {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Normalize validates an externally supplied category value. Values outside
// the closed set collapse to NeedsReview so an unexpected classifier output
// is never trusted downstream.
func Normalize(s string) Category {
	if c, err := Parse(s); err == nil {
		return c
	}
	return NeedsReview
}

// UnmarshalJSON validates that the decoded string is a known category value.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Category(raw)
	if !Valid(v) {
		return ErrInvalidCategory
	}
	*c = v
	return nil
}
