package similarity

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vaultry/triage/internal/categories"
	"github.com/vaultry/triage/internal/goldset"
	"github.com/vaultry/triage/pkg/embedding"
)

// maxExamplesPerCategory bounds how many gold set examples are embedded and
// compared per candidate category in a single comparison.
const maxExamplesPerCategory = 10

// Engine compares document text against the gold set. Classification must
// never hard-fail because embeddings are unavailable, so every dependency
// error degrades to the neutral no-evidence result instead of propagating.
type Engine struct {
	embedder embedding.System
	cache    *embedding.Cache
	goldset  goldset.System
	logger   *slog.Logger
}

// NewEngine creates a similarity engine. The cache is injected so tests and
// independent pipelines can run with isolated instances.
func NewEngine(
	embedder embedding.System,
	cache *embedding.Cache,
	gs goldset.System,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		embedder: embedder,
		cache:    cache,
		goldset:  gs,
		logger:   logger.With("system", "similarity"),
	}
}

type match struct {
	category categories.Category
	subtype  *string
	cosine   float64
}

// CompareToGoldSet embeds the document once and compares it against up to
// maxExamplesPerCategory examples for the AI-suggested category and each of
// its related categories, tracking the single best match across the whole
// candidate set. The related categories widen the net so a strong match in a
// different but plausible category can surface a disagreement.
func (e *Engine) CompareToGoldSet(
	ctx context.Context,
	documentText string,
	aiCategory categories.Category,
	organizationID *uuid.UUID,
) *Result {
	candidates := append([]categories.Category{aiCategory}, categories.Related(aiCategory)...)

	var examples []goldset.Example
	for _, category := range candidates {
		batch, err := e.goldset.Examples(ctx, category, organizationID, maxExamplesPerCategory)
		if err != nil {
			e.logger.Warn("gold set fetch failed, degrading to neutral",
				"category", category,
				"error", err,
			)
			return Neutral("gold set unavailable")
		}
		examples = append(examples, batch...)
	}

	if len(examples) == 0 {
		return Neutral("")
	}

	docVec, err := e.embed(ctx, documentText)
	if err != nil {
		e.logger.Warn("document embedding failed, degrading to neutral", "error", err)
		return Neutral("embedding unavailable")
	}

	best, err := e.bestMatch(ctx, docVec, examples)
	if err != nil {
		e.logger.Warn("example embedding failed, degrading to neutral", "error", err)
		return Neutral("embedding unavailable")
	}

	matched := best.category
	return &Result{
		MatchedCategory:  &matched,
		MatchedSubtype:   best.subtype,
		Similarity:       (best.cosine + 1) / 2,
		ExamplesCompared: len(examples),
		AgreesWithAI:     matched == aiCategory,
	}
}

// HasEnoughExamples reports whether the category has at least minimum
// examples (tenant plus global), guarding callers against trusting the
// similarity signal during cold start. A store failure counts as not enough.
func (e *Engine) HasEnoughExamples(
	ctx context.Context,
	category categories.Category,
	organizationID *uuid.UUID,
	minimum int,
) bool {
	if minimum <= 0 {
		minimum = goldset.MinimumExamples
	}

	count, err := e.goldset.Count(ctx, category, organizationID)
	if err != nil {
		e.logger.Warn("gold set count failed", "category", category, "error", err)
		return false
	}

	return count >= minimum
}

func (e *Engine) bestMatch(ctx context.Context, docVec []float64, examples []goldset.Example) (match, error) {
	var mu sync.Mutex
	best := match{cosine: -1}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(examples)))

	for _, example := range examples {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			vec, err := e.embed(gctx, example.TextSample)
			if err != nil {
				return err
			}

			cos := Cosine(docVec, vec)

			mu.Lock()
			if cos > best.cosine {
				best = match{
					category: example.Category,
					subtype:  example.Subtype,
					cosine:   cos,
				}
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return match{}, err
	}

	return best, nil
}

func (e *Engine) embed(ctx context.Context, text string) ([]float64, error) {
	if vec, ok := e.cache.Get(text); ok {
		return vec, nil
	}

	vec, err := e.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	e.cache.Put(text, vec)
	return vec, nil
}

func workerCount(n int) int {
	return max(min(runtime.NumCPU(), n), 1)
}
