package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// CompareNode returns a state node that compares the document text against
// the gold set. The engine degrades internally (neutral result on missing
// evidence or dependency failure), so this node never fails the pipeline on
// similarity grounds.
func CompareNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		input, err := extractInput(s)
		if err != nil {
			return s, fmt.Errorf("compare: %w", err)
		}

		ps, err := extractPipeState(s)
		if err != nil {
			return s, fmt.Errorf("compare: %w", err)
		}

		ps.Similarity = rt.Similarity.CompareToGoldSet(
			ctx,
			input.DocumentText,
			input.Category(),
			input.OrganizationID,
		)

		rt.Logger.InfoContext(
			ctx, "compare node complete",
			"document_id", input.DocumentID,
			"examples_compared", ps.Similarity.ExamplesCompared,
			"similarity", ps.Similarity.Similarity,
			"agrees_with_ai", ps.Similarity.AgreesWithAI,
			"degraded", ps.Similarity.Degraded,
		)

		s = s.Set(KeyPipeState, ps)
		return s, nil
	})
}
