package api

import (
	"net/http"

	"github.com/vaultry/triage/internal/config"
	"github.com/vaultry/triage/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	sh := newStorageHandler(runtime.Storage, runtime.Logger)

	routes.Register(
		mux,
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Classifications.Handler().Routes(),
		domain.GoldSet.Handler().Routes(),
		sh.routes(),
	)
}
