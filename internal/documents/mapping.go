package documents

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/vaultry/triage/pkg/query"
	"github.com/vaultry/triage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("organization_id", "OrganizationID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("extracted_text", "ExtractedText").
	Project("ocr_confidence", "OcrConfidence").
	Project("metadata", "Metadata").
	Project("raw_fields", "RawFields").
	Project("status", "Status").
	Project("uploaded_at", "UploadedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored. Status, ContentType, and OrganizationID use exact
// matching; Filename uses case-insensitive contains matching.
type Filters struct {
	Status         *string    `json:"status,omitempty"`
	Filename       *string    `json:"filename,omitempty"`
	ContentType    *string    `json:"content_type,omitempty"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType).
		WhereEquals("OrganizationID", f.OrganizationID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	if org := values.Get("organization_id"); org != "" {
		if id, err := uuid.Parse(org); err == nil {
			f.OrganizationID = &id
		}
	}

	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	var metadataRaw, rawFieldsRaw []byte

	err := s.Scan(
		&d.ID,
		&d.OrganizationID,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.PageCount,
		&d.StorageKey,
		&d.ExtractedText,
		&d.OcrConfidence,
		&metadataRaw,
		&rawFieldsRaw,
		&d.Status,
		&d.UploadedAt,
		&d.UpdatedAt,
	)

	if err != nil {
		return d, err
	}

	if len(metadataRaw) > 0 {
		if err := json.Unmarshal(metadataRaw, &d.Metadata); err != nil {
			return d, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}

	if len(rawFieldsRaw) > 0 {
		if err := json.Unmarshal(rawFieldsRaw, &d.RawFields); err != nil {
			return d, fmt.Errorf("unmarshal raw_fields: %w", err)
		}
	}

	return d, nil
}
