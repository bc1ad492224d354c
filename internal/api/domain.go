package api

import (
	"github.com/vaultry/triage/internal/classifications"
	"github.com/vaultry/triage/internal/documents"
	"github.com/vaultry/triage/internal/goldset"
	"github.com/vaultry/triage/internal/similarity"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents       documents.System
	GoldSet         goldset.System
	Classifications classifications.System
	Similarity      *similarity.Engine
}

// NewDomain creates all domain systems from the API runtime. The similarity
// engine is shared: the classification pipeline consumes it through the
// workflow runtime, and the gold set admin surface reuses its cold-start
// checks.
func NewDomain(runtime *Runtime) *Domain {
	docsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	goldsetSystem := goldset.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	engine := similarity.NewEngine(
		runtime.Embedder,
		runtime.EmbedCache,
		goldsetSystem,
		runtime.Logger,
	)

	classificationsSystem := classifications.New(
		runtime.Database.Connection(),
		runtime.Agent,
		runtime.Logger,
		runtime.Pagination,
		runtime.Storage,
		docsSystem,
		goldsetSystem,
		engine,
	)

	return &Domain{
		Documents:       docsSystem,
		GoldSet:         goldsetSystem,
		Classifications: classificationsSystem,
		Similarity:      engine,
	}
}
