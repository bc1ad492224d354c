package workflow

import (
	"log/slog"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/vaultry/triage/internal/goldset"
	"github.com/vaultry/triage/internal/similarity"
	"github.com/vaultry/triage/pkg/storage"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and
// Domain systems.
type Runtime struct {
	Agent      gaconfig.AgentConfig
	Storage    storage.System
	GoldSet    goldset.System
	Similarity *similarity.Engine
	Logger     *slog.Logger
}
