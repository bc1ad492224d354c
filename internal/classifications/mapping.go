package classifications

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/vaultry/triage/pkg/query"
	"github.com/vaultry/triage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "classifications", "c").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("category", "Category").
	Project("subtype", "Subtype").
	Project("final_confidence", "FinalConfidence").
	Project("ai_category", "AiCategory").
	Project("ai_subtype", "AiSubtype").
	Project("ai_confidence", "AiConfidence").
	Project("signals", "Signals").
	Project("can_auto_file", "CanAutoFile").
	Project("auto_file_block_reason", "AutoFileBlockReason").
	Project("was_adjusted", "WasAdjusted").
	Project("pass2_used", "Pass2Used").
	Project("escalation_reason", "EscalationReason").
	Project("escalation_priority", "EscalationPriority").
	Project("explanation", "Explanation").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("classified_at", "ClassifiedAt").
	Project("corrected_by", "CorrectedBy").
	Project("corrected_at", "CorrectedAt")

var defaultSort = query.SortField{
	Field:      "ClassifiedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for classification queries.
// Nil fields are ignored. All fields use exact matching.
type Filters struct {
	Category           *string    `json:"category,omitempty"`
	DocumentID         *uuid.UUID `json:"document_id,omitempty"`
	CanAutoFile        *bool      `json:"can_auto_file,omitempty"`
	Pass2Used          *bool      `json:"pass2_used,omitempty"`
	EscalationPriority *string    `json:"escalation_priority,omitempty"`
	CorrectedBy        *string    `json:"corrected_by,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Category", f.Category).
		WhereEquals("DocumentID", f.DocumentID).
		WhereEquals("CanAutoFile", f.CanAutoFile).
		WhereEquals("Pass2Used", f.Pass2Used).
		WhereEquals("EscalationPriority", f.EscalationPriority).
		WhereEquals("CorrectedBy", f.CorrectedBy)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if d := values.Get("document_id"); d != "" {
		if id, err := uuid.Parse(d); err == nil {
			f.DocumentID = &id
		}
	}

	if a := values.Get("can_auto_file"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.CanAutoFile = &v
		}
	}

	if p := values.Get("pass2_used"); p != "" {
		if v, err := strconv.ParseBool(p); err == nil {
			f.Pass2Used = &v
		}
	}

	if e := values.Get("escalation_priority"); e != "" {
		f.EscalationPriority = &e
	}

	if c := values.Get("corrected_by"); c != "" {
		f.CorrectedBy = &c
	}

	return f
}

func scanClassification(s repository.Scanner) (Classification, error) {
	var c Classification
	var signalsRaw []byte

	err := s.Scan(
		&c.ID,
		&c.DocumentID,
		&c.Category,
		&c.Subtype,
		&c.FinalConfidence,
		&c.AiCategory,
		&c.AiSubtype,
		&c.AiConfidence,
		&signalsRaw,
		&c.CanAutoFile,
		&c.AutoFileBlockReason,
		&c.WasAdjusted,
		&c.Pass2Used,
		&c.EscalationReason,
		&c.EscalationPriority,
		&c.Explanation,
		&c.ModelName,
		&c.ProviderName,
		&c.ClassifiedAt,
		&c.CorrectedBy,
		&c.CorrectedAt,
	)

	if err != nil {
		return c, err
	}

	if len(signalsRaw) > 0 {
		if err := json.Unmarshal(signalsRaw, &c.Signals); err != nil {
			return c, fmt.Errorf("unmarshal signals: %w", err)
		}
	}

	return c, nil
}
