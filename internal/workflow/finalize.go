package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/vaultry/triage/internal/categories"
	"github.com/vaultry/triage/internal/confidence"
)

// FinalizeNode returns a state node that assembles the terminal Result:
// pass 2 output when the document escalated, otherwise the pass 1 category
// with the fused confidence.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		input, err := extractInput(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		ps, err := extractPipeState(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		category, subtype, final := resolveOutcome(input, ps)

		result := &Result{
			DocumentID:      input.DocumentID,
			Category:        category,
			Subtype:         subtype,
			FinalConfidence: final,
			Confidence:      ps.Confidence,
			Quality:         ps.Gate.Assessment,
			Similarity:      ps.Similarity,
			Decision:        ps.Decision,
			Pass2:           ps.Pass2,
			Explanation:     confidence.Explain(ps.Confidence),
			CompletedAt:     time.Now(),
		}

		rt.Logger.InfoContext(
			ctx, "pipeline complete",
			"document_id", input.DocumentID,
			"category", category,
			"final_confidence", final,
			"escalated", ps.Pass2 != nil,
		)

		s = s.Set(KeyResult, result)
		return s, nil
	})
}

// resolveOutcome picks the terminal category, subtype, and confidence.
// Pass 2 output, when present, is authoritative.
func resolveOutcome(input Input, ps PipelineState) (categories.Category, *string, float64) {
	if ps.Pass2 != nil {
		return ps.Pass2.Category, ps.Pass2.Subtype, ps.Pass2.Confidence
	}
	return input.Category(), input.AiSubtype, ps.Confidence.FinalConfidence
}
