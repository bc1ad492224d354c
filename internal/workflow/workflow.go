package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// Execute runs the decision pipeline for a single classified document. It
// builds the state graph (gate → compare → score → escalate? → finalize),
// executes it, and extracts the Result from the final state.
func Execute(ctx context.Context, rt *Runtime, input Input) (*Result, error) {
	if input.DocumentID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing document id", ErrInvalidInput)
	}

	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyInput, input)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("triage-pipeline")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("gate", GateNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("compare", CompareNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("score", ScoreNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("escalate", EscalateNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("finalize", FinalizeNode(rt)); err != nil {
		return nil, err
	}

	// gate → compare (unconditional)
	if err := graph.AddEdge("gate", "compare", nil); err != nil {
		return nil, err
	}

	// compare → score (unconditional)
	if err := graph.AddEdge("compare", "score", nil); err != nil {
		return nil, err
	}

	// score → escalate (when the rule ladder fires)
	if err := graph.AddEdge("score", "escalate", shouldEscalate); err != nil {
		return nil, err
	}

	// score → finalize (when pass 1 is accepted)
	if err := graph.AddEdge("score", "finalize", state.Not(shouldEscalate)); err != nil {
		return nil, err
	}

	// escalate → finalize (unconditional)
	if err := graph.AddEdge("escalate", "finalize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("gate"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func shouldEscalate(s state.State) bool {
	val, ok := s.Get(KeyPipeState)
	if !ok {
		return false
	}

	ps, ok := val.(PipelineState)
	if !ok {
		return false
	}

	return ps.Decision.ShouldEscalate
}

func extractInput(s state.State) (Input, error) {
	val, ok := s.Get(KeyInput)
	if !ok {
		return Input{}, fmt.Errorf("%w: missing %s", ErrMissingState, KeyInput)
	}

	input, ok := val.(Input)
	if !ok {
		return Input{}, fmt.Errorf("%w: %s is not Input", ErrMissingState, KeyInput)
	}

	return input, nil
}

func extractPipeState(s state.State) (PipelineState, error) {
	val, ok := s.Get(KeyPipeState)
	if !ok {
		return PipelineState{}, fmt.Errorf("%w: missing %s", ErrMissingState, KeyPipeState)
	}

	ps, ok := val.(PipelineState)
	if !ok {
		return PipelineState{}, fmt.Errorf("%w: %s is not PipelineState", ErrMissingState, KeyPipeState)
	}

	return ps, nil
}

func extractResult(s state.State) (*Result, error) {
	val, ok := s.Get(KeyResult)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in final state", ErrMissingState, KeyResult)
	}

	result, ok := val.(*Result)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not *Result", ErrMissingState, KeyResult)
	}

	return result, nil
}
