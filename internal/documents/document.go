// Package documents implements the document domain for Triage.
// It provides types, data access, and business logic for document upload,
// extraction ingest, blob storage integration, and filing status tracking.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Document filing statuses. A document is pending until the pipeline runs,
// then classified (auto-file eligible) or review (needs a human), and
// finally filed once a human confirms or corrects it.
const (
	StatusPending    = "pending"
	StatusClassified = "classified"
	StatusReview     = "review"
	StatusFiled      = "filed"
)

// Document represents a registered document with its blob storage reference
// and the extraction payload supplied by the external OCR layer. Metadata
// holds the curated extraction fields; RawFields holds the provider's
// unnormalized output. A nil OrganizationID marks the document global.
type Document struct {
	ID             uuid.UUID      `json:"id"`
	OrganizationID *uuid.UUID     `json:"organization_id"`
	Filename       string         `json:"filename"`
	ContentType    string         `json:"content_type"`
	SizeBytes      int64          `json:"size_bytes"`
	PageCount      *int           `json:"page_count"`
	StorageKey     string         `json:"storage_key"`
	ExtractedText  string         `json:"extracted_text"`
	OcrConfidence  *float64       `json:"ocr_confidence"`
	Metadata       map[string]any `json:"metadata"`
	RawFields      map[string]any `json:"raw_fields"`
	Status         string         `json:"status"`
	UploadedAt     time.Time      `json:"uploaded_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Extracted reports whether the document has received its extraction
// payload. The classification pipeline requires it.
func (d *Document) Extracted() bool {
	return d.OcrConfidence != nil
}

// CreateCommand carries the data needed to upload and register a new
// document. Data holds the raw file bytes. PageCount is optional and may be
// extracted by the caller via pdfcpu; nil values are stored as NULL.
type CreateCommand struct {
	Data           []byte
	Filename       string
	ContentType    string
	OrganizationID *uuid.UUID
	PageCount      *int
}

// ExtractionCommand carries the OCR layer's output for a document:
// full extracted text, overall extraction confidence in [0, 1], and the
// curated and raw field maps.
type ExtractionCommand struct {
	ExtractedText string         `json:"extracted_text"`
	OcrConfidence float64        `json:"ocr_confidence"`
	Metadata      map[string]any `json:"metadata"`
	RawFields     map[string]any `json:"raw_fields"`
}
