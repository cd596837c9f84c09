package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	CatalogModeMock   = "mock"
	CatalogModeRemote = "remote"
)

// Config содержит конфигурацию приложения
type Config struct {
	Env      string // local | staging | prod
	Port     int
	LogLevel string

	// Product catalog backing variant
	CatalogMode       string // mock | remote
	APIBaseURL        string // base address of the remote products API
	APITimeoutSeconds int
	MockLatencyMs     int // simulated round-trip delay of the mock catalog

	// CORS
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// Rate Limiting
	RateLimitRPS   int
	RateLimitBurst int

	// Reports
	ReportsMaxRangeDays int
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env == "" {
		env = "local"
	}

	// PORT (default: 8080)
	port := envInt("PORT", 8080)

	// LOG_LEVEL (default: debug)
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "debug"
	}

	// ---------- Catalog ----------
	catalogMode := strings.ToLower(strings.TrimSpace(os.Getenv("CATALOG_MODE")))
	if catalogMode == "" {
		catalogMode = CatalogModeMock
	}
	if catalogMode != CatalogModeMock && catalogMode != CatalogModeRemote {
		log.Printf("WARNING: unknown CATALOG_MODE=%q, fallback to %s", catalogMode, CatalogModeMock)
		catalogMode = CatalogModeMock
	}

	apiBaseURL := strings.TrimSpace(os.Getenv("API_BASE_URL"))
	if apiBaseURL == "" {
		apiBaseURL = "http://localhost:3001/api"
	}

	apiTimeoutSeconds := envInt("API_TIMEOUT_SECONDS", 10)
	if apiTimeoutSeconds <= 0 {
		apiTimeoutSeconds = 10
	}

	// MOCK_LATENCY_MS (default: 0; the demo profile uses 500)
	mockLatencyMs := envInt("MOCK_LATENCY_MS", 0)
	if mockLatencyMs < 0 {
		mockLatencyMs = 0
	}

	if catalogMode == CatalogModeRemote && os.Getenv("API_BASE_URL") == "" {
		log.Printf("WARNING: CATALOG_MODE=remote without API_BASE_URL, using %s", apiBaseURL)
	}

	// ---------- CORS ----------
	corsOrigins := parseCORSOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"), env)
	corsAllowCreds := parseBoolEnv("CORS_ALLOW_CREDENTIALS")

	// ---------- Rate Limiting ----------
	rateLimitRPS := envInt("RATE_LIMIT_RPS", 0)
	rateLimitBurst := envInt("RATE_LIMIT_BURST", 0)

	// REPORTS_MAX_RANGE_DAYS (default: 90)
	reportsMaxRangeDays := envInt("REPORTS_MAX_RANGE_DAYS", 90)
	if reportsMaxRangeDays <= 0 {
		reportsMaxRangeDays = 90
	}

	return &Config{
		Env:      env,
		Port:     port,
		LogLevel: logLevel,

		CatalogMode:       catalogMode,
		APIBaseURL:        apiBaseURL,
		APITimeoutSeconds: apiTimeoutSeconds,
		MockLatencyMs:     mockLatencyMs,

		CORSAllowedOrigins:   corsOrigins,
		CORSAllowCredentials: corsAllowCreds,

		RateLimitRPS:   rateLimitRPS,
		RateLimitBurst: rateLimitBurst,

		ReportsMaxRangeDays: reportsMaxRangeDays,
	}
}

// parseCORSOrigins parses CORS_ALLOWED_ORIGINS env var.
// In local mode, defaults to localhost origins if empty.
func parseCORSOrigins(raw, env string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if env == "local" {
			return []string{"http://localhost:3000", "http://localhost:5173"}
		}
		return nil // prod: deny by default
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
