package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"

	"nutrition-diary-api/internal/config"
	"nutrition-diary-api/internal/httpserver"
)

func main() {
	cfg := config.Load()

	printStartupBanner(cfg)

	server := httpserver.New(cfg)

	log.Fatal(server.Start())
}

// printStartupBanner logs a one-time summary of the resolved configuration.
func printStartupBanner(cfg *config.Config) {
	log.Println("======= Nutrition Diary API =======")
	log.Printf("  env              = %s", cfg.Env)
	log.Printf("  port             = %d", cfg.Port)

	log.Println("---- catalog ----")
	log.Printf("  catalog_mode     = %s", cfg.CatalogMode)
	if cfg.CatalogMode == config.CatalogModeRemote {
		log.Printf("  api_base_url     = %s", cfg.APIBaseURL)
		log.Printf("  api_timeout      = %ds", cfg.APITimeoutSeconds)
	} else {
		log.Printf("  mock_latency     = %dms", cfg.MockLatencyMs)
	}

	log.Println("---- http ----")
	log.Printf("  cors_origins     = %v", cfg.CORSAllowedOrigins)
	log.Printf("  rate_limit_rps   = %d", cfg.RateLimitRPS)
	log.Printf("  reports_max_days = %d", cfg.ReportsMaxRangeDays)

	log.Println("===================================")
}
