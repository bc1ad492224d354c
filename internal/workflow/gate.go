package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/vaultry/triage/internal/extraction"
	"github.com/vaultry/triage/internal/quality"
)

// GateNode returns a state node that normalizes the extraction payload into
// the canonical field record and applies the OCR quality gate. The gate runs
// first so every downstream signal sees a ceiling-capped view of the
// classifier's self-reported confidence.
func GateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		input, err := extractInput(s)
		if err != nil {
			return s, fmt.Errorf("gate: %w", err)
		}

		fields := extraction.Normalize(input.Metadata, input.RawFields)
		gate := quality.ApplyGate(input.AiConfidence, input.OcrConfidence, input.Category(), fields)

		rt.Logger.InfoContext(
			ctx, "gate node complete",
			"document_id", input.DocumentID,
			"quality", gate.Assessment.Quality,
			"max_allowed_confidence", gate.Assessment.MaxAllowedConfidence,
			"was_limited", gate.WasLimited,
		)

		s = s.Set(KeyPipeState, PipelineState{
			Fields: fields,
			Gate:   gate,
		})

		return s, nil
	})
}
