package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/vaultry/triage/internal/escalation"
)

// EscalateNode returns a state node that runs the second classification
// pass over the narrowed candidate set. The router guarantees a terminal
// result — it degrades to the top candidate on any failure — so this node
// only fails on state plumbing.
func EscalateNode(rt *Runtime) state.StateNode {
	router := escalation.NewRouter(rt.Agent, rt.Storage, rt.Logger)

	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		input, err := extractInput(s)
		if err != nil {
			return s, fmt.Errorf("escalate: %w", err)
		}

		ps, err := extractPipeState(s)
		if err != nil {
			return s, fmt.Errorf("escalate: %w", err)
		}

		candidates := escalation.TopCandidates(
			input.Category(),
			ps.Confidence.FinalConfidence,
			ps.Similarity.MatchedCategory,
			ps.Similarity.Similarity,
			escalation.DefaultCandidateLimit,
		)

		result := router.Pass2(ctx, escalation.Pass2Request{
			StorageKey:   input.StorageKey,
			DocumentText: input.DocumentText,
			FileName:     input.FileName,
			MimeType:     input.MimeType,
			Candidates:   candidates,
		})

		rt.Logger.InfoContext(
			ctx, "escalate node complete",
			"document_id", input.DocumentID,
			"category", result.Category,
			"confidence", result.Confidence,
			"fallback", result.Fallback,
		)

		ps.Pass2 = &result
		s = s.Set(KeyPipeState, ps)
		return s, nil
	})
}
