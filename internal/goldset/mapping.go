package goldset

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/vaultry/triage/pkg/query"
	"github.com/vaultry/triage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "gold_set_examples", "g").
	Project("id", "ID").
	Project("category", "Category").
	Project("subtype", "Subtype").
	Project("text_sample", "TextSample").
	Project("folder_path", "FolderPath").
	Project("source", "Source").
	Project("organization_id", "OrganizationID").
	Project("user_id", "UserID").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for gold set queries.
// Nil fields are ignored.
type Filters struct {
	Category       *string    `json:"category,omitempty"`
	Subtype        *string    `json:"subtype,omitempty"`
	Source         *string    `json:"source,omitempty"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Category", f.Category).
		WhereEquals("Subtype", f.Subtype).
		WhereEquals("Source", f.Source).
		WhereEquals("OrganizationID", f.OrganizationID).
		WhereEquals("UserID", f.UserID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if s := values.Get("subtype"); s != "" {
		f.Subtype = &s
	}

	if s := values.Get("source"); s != "" {
		f.Source = &s
	}

	if org := values.Get("organization_id"); org != "" {
		if v, err := uuid.Parse(org); err == nil {
			f.OrganizationID = &v
		}
	}

	if u := values.Get("user_id"); u != "" {
		if v, err := uuid.Parse(u); err == nil {
			f.UserID = &v
		}
	}

	return f
}

func scanExample(s repository.Scanner) (Example, error) {
	var e Example
	err := s.Scan(
		&e.ID,
		&e.Category,
		&e.Subtype,
		&e.TextSample,
		&e.FolderPath,
		&e.Source,
		&e.OrganizationID,
		&e.UserID,
		&e.CreatedAt,
	)
	return e, err
}
