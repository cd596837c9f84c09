package products

import (
	"strings"
	"time"

	"nutrition-diary-api/internal/config"
)

// New selects the catalog variant by configuration.
// Unknown or empty modes fall back to the in-memory mock catalog.
func New(cfg *config.Config) Catalog {
	mode := strings.ToLower(strings.TrimSpace(cfg.CatalogMode))

	switch mode {
	case config.CatalogModeRemote:
		return NewRemoteCatalog(cfg)
	default:
		return NewSeededMemoryCatalog(time.Duration(cfg.MockLatencyMs) * time.Millisecond)
	}
}
