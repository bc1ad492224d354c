package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/vaultry/triage/internal/confidence"
	"github.com/vaultry/triage/internal/escalation"
)

// ScoreNode returns a state node that fuses the quality and similarity
// signals into the final confidence result, then evaluates the escalation
// rule ladder against it. Both steps are pure functions; the node only
// plumbs state.
func ScoreNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		input, err := extractInput(s)
		if err != nil {
			return s, fmt.Errorf("score: %w", err)
		}

		ps, err := extractPipeState(s)
		if err != nil {
			return s, fmt.Errorf("score: %w", err)
		}

		ps.Confidence = confidence.Calculate(ps.Gate.Assessment, ps.Similarity, input.AiConfidence)

		ps.Decision = escalation.Evaluate(escalation.Criteria{
			Confidence:      ps.Confidence.FinalConfidence,
			SimilarityScore: ps.Similarity.Similarity,
			ModelAgreement:  ps.Similarity.AgreesWithAI,
			OcrQuality:      ps.Gate.Assessment.Quality,
		})

		rt.Logger.InfoContext(
			ctx, "score node complete",
			"document_id", input.DocumentID,
			"final_confidence", ps.Confidence.FinalConfidence,
			"can_auto_file", ps.Confidence.CanAutoFile,
			"should_escalate", ps.Decision.ShouldEscalate,
			"priority", ps.Decision.Priority,
		)

		s = s.Set(KeyPipeState, ps)
		return s, nil
	})
}
