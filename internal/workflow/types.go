// Package workflow implements the classification decision pipeline for
// Triage as a state graph: quality gate → gold set comparison → multi-signal
// scoring → optional second-pass escalation. It turns one external
// first-pass classification into a final, trustworthy filing decision.
package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/vaultry/triage/internal/categories"
	"github.com/vaultry/triage/internal/confidence"
	"github.com/vaultry/triage/internal/escalation"
	"github.com/vaultry/triage/internal/extraction"
	"github.com/vaultry/triage/internal/quality"
	"github.com/vaultry/triage/internal/similarity"
)

// State graph keys.
const (
	KeyInput     = "input"
	KeyPipeState = "pipeline_state"
	KeyResult    = "result"
)

// Input carries one document and its first-pass classification into the
// pipeline. Metadata and RawFields are the two extraction shapes supplied by
// the external OCR layer; the gate node normalizes them before any evidence
// check runs. AiCategory is validated against the closed category set —
// an unrecognized value collapses to needs_review before any rule sees it.
type Input struct {
	DocumentID     uuid.UUID
	StorageKey     string
	FileName       string
	MimeType       string
	DocumentText   string
	OcrConfidence  float64
	Metadata       map[string]any
	RawFields      map[string]any
	AiCategory     string
	AiSubtype      *string
	AiConfidence   float64
	OrganizationID *uuid.UUID
}

// Category returns the validated first-pass category.
func (in Input) Category() categories.Category {
	return categories.Normalize(in.AiCategory)
}

// PipelineState accumulates per-node outputs as the graph executes.
type PipelineState struct {
	Fields     extraction.Fields
	Gate       quality.GateResult
	Similarity *similarity.Result
	Confidence confidence.Result
	Decision   escalation.Decision
	Pass2      *escalation.Pass2Result
}

// Result is the final output of one pipeline execution: the category,
// subtype, and confidence to persist, plus every intermediate signal for
// audit and explanation.
type Result struct {
	DocumentID      uuid.UUID               `json:"document_id"`
	Category        categories.Category     `json:"category"`
	Subtype         *string                 `json:"subtype"`
	FinalConfidence float64                 `json:"final_confidence"`
	Confidence      confidence.Result       `json:"confidence"`
	Quality         quality.Assessment      `json:"quality"`
	Similarity      *similarity.Result      `json:"similarity"`
	Decision        escalation.Decision     `json:"decision"`
	Pass2           *escalation.Pass2Result `json:"pass2,omitempty"`
	Explanation     string                  `json:"explanation"`
	CompletedAt     time.Time               `json:"completed_at"`
}

// Pass2Used reports whether the second pass produced this result.
func (r *Result) Pass2Used() bool {
	return r.Pass2 != nil
}
