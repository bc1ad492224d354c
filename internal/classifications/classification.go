// Package classifications implements the classification domain for Triage.
// It provides types, data access, and business logic for running the
// decision pipeline over extracted documents, persisting the resulting
// decisions, and applying human corrections that feed the gold set.
package classifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/vaultry/triage/internal/confidence"
)

// Classification represents a stored pipeline decision for a document.
// Category and FinalConfidence are the terminal outcome; the Ai* fields
// preserve the external classifier's original first-pass answer for audit.
type Classification struct {
	ID                  uuid.UUID          `json:"id"`
	DocumentID          uuid.UUID          `json:"document_id"`
	Category            string             `json:"category"`
	Subtype             *string            `json:"subtype"`
	FinalConfidence     float64            `json:"final_confidence"`
	AiCategory          string             `json:"ai_category"`
	AiSubtype           *string            `json:"ai_subtype"`
	AiConfidence        float64            `json:"ai_confidence"`
	Signals             confidence.Signals `json:"signals"`
	CanAutoFile         bool               `json:"can_auto_file"`
	AutoFileBlockReason *string            `json:"auto_file_block_reason"`
	WasAdjusted         bool               `json:"was_adjusted"`
	Pass2Used           bool               `json:"pass2_used"`
	EscalationReason    string             `json:"escalation_reason"`
	EscalationPriority  string             `json:"escalation_priority"`
	Explanation         string             `json:"explanation"`
	ModelName           string             `json:"model_name"`
	ProviderName        string             `json:"provider_name"`
	ClassifiedAt        time.Time          `json:"classified_at"`
	CorrectedBy         *string            `json:"corrected_by"`
	CorrectedAt         *time.Time         `json:"corrected_at"`
}

// ClassifyCommand carries the external classifier's first-pass answer into
// the pipeline. An unrecognized AiCategory is treated as needs_review rather
// than rejected.
type ClassifyCommand struct {
	AiCategory   string  `json:"ai_category"`
	AiSubtype    *string `json:"ai_subtype"`
	AiConfidence float64 `json:"ai_confidence"`
}

// CorrectCommand carries a human correction. Category may be given
// explicitly or inferred from the destination FolderPath; an explicit value
// wins. CorrectedBy identifies the human; UserID attributes the gold set
// example the correction produces.
type CorrectCommand struct {
	Category    *string   `json:"category"`
	Subtype     *string   `json:"subtype"`
	FolderPath  string    `json:"folder_path"`
	CorrectedBy string    `json:"corrected_by"`
	UserID      uuid.UUID `json:"user_id"`
}
