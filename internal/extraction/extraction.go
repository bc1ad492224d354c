// Package extraction normalizes the two differently shaped field sources
// produced by the OCR layer — the structured metadata object and the raw
// extraction output — into one canonical Fields record. All downstream
// evidence checks run against the canonical record, never against the raw
// shapes directly.
package extraction

import (
	"fmt"
	"strings"
)

// rawAliases translates raw extraction field names to canonical logical
// names. Raw extractors report vendor-flavored keys (e.g. "total" where the
// quality gate expects "amount"); the canonical name wins when both sources
// supply a value.
var rawAliases = map[string]string{
	"total":           "amount",
	"total_amount":    "amount",
	"subtotal":        "amount",
	"amount_due":      "amount",
	"invoice_id":      "invoiceNumber",
	"invoice_number":  "invoiceNumber",
	"name":            "personName",
	"full_name":       "fullName",
	"id_number":       "documentNumber",
	"document_number": "documentNumber",
	"account_number":  "accountNumber",
	"policy_number":   "policyNumber",
	"vendor":          "vendorName",
	"vendor_name":     "vendorName",
	"employer":        "employerName",
	"employer_name":   "employerName",
	"provider":        "providerName",
	"patient":         "patientName",
	"due_date":        "dueDate",
	"invoice_date":    "date",
	"issue_date":      "issueDate",
	"tax_year":        "taxYear",
}

// identifierFields are the canonical names treated as generic identifying
// evidence when a category has no required-field expectations.
var identifierFields = []string{
	"documentNumber",
	"accountNumber",
	"invoiceNumber",
	"policyNumber",
	"personName",
	"fullName",
}

// dateFields are the canonical names treated as generic date evidence.
var dateFields = []string{
	"date",
	"dueDate",
	"issueDate",
	"effectiveDate",
	"expirationDate",
}

// Fields is the canonical extracted-field record: canonical logical name to
// non-empty string value. Absent evidence is an absent key, never an empty
// value.
type Fields map[string]string

// Normalize folds a structured metadata object and a raw extraction object
// into a canonical Fields record. Metadata keys are taken as-is; raw keys are
// translated through the alias table (unknown raw keys carry over unchanged).
// Metadata values take precedence over raw values for the same canonical name.
// Nil maps and blank values are treated as absent evidence.
func Normalize(metadata map[string]any, raw map[string]any) Fields {
	fields := make(Fields)

	for key, val := range raw {
		name := key
		if alias, ok := rawAliases[strings.ToLower(key)]; ok {
			name = alias
		}
		if s := stringify(val); s != "" {
			fields[name] = s
		}
	}

	for key, val := range metadata {
		if s := stringify(val); s != "" {
			fields[key] = s
		}
	}

	return fields
}

// Has reports whether the canonical field name carries a non-empty value.
func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// HasAnyOf reports whether at least one of the given canonical names is present.
func (f Fields) HasAnyOf(names []string) bool {
	for _, name := range names {
		if f.Has(name) {
			return true
		}
	}
	return false
}

// HasIdentifierOrDate reports whether any generic identifier or date field is
// present. Used as the evidence fallback for categories without a
// required-field set.
func (f Fields) HasIdentifierOrDate() bool {
	return f.HasAnyOf(identifierFields) || f.HasAnyOf(dateFields)
}

func stringify(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	case float64:
		if v == 0 {
			return ""
		}
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
	case int:
		if v == 0 {
			return ""
		}
		return fmt.Sprintf("%d", v)
	case bool:
		if !v {
			return ""
		}
		return "true"
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
