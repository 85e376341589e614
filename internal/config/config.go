package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the record store service
const (
	BackendMemory   = "memory"
	BackendNeo4j    = "neo4j"
	BackendPostgres = "postgres"
)

// Config contains runtime settings for both binaries
type Config struct {
	LogLevel    string
	Host        string // default 0.0.0.0
	Port        string // default PORT env or 8080
	CatalogPath string // empty uses the built-in catalog

	// FormStore is the remote record store the form session talks to
	FormStore struct {
		URL     string
		Timeout time.Duration
	}

	// Store configures the record store service itself
	Store struct {
		Host           string
		Port           string
		Backend        string
		AllowedOrigins []string
	}

	Neo4j struct {
		URI      string
		Username string
		Password string
		Database string
	}

	Postgres struct {
		DSN string
	}

	Sheets struct {
		CredentialsPath string
		SpreadsheetID   string
		Tab             string
	}
}

// Load populates config from a .env file (if any) and environment variables
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
	}
	cfg.FormStore.URL = "http://localhost:8081/api"
	cfg.FormStore.Timeout = 10 * time.Second
	cfg.Store.Host = "0.0.0.0"
	cfg.Store.Port = "8081"
	cfg.Store.Backend = BackendMemory
	cfg.Sheets.Tab = "Applications"

	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Host, "MCP_HOST")
	setString(&cfg.Port, "PORT")
	setString(&cfg.CatalogPath, "CATALOG_PATH")

	setString(&cfg.FormStore.URL, "FORMSTORE_URL")
	if v := os.Getenv("FORMSTORE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid FORMSTORE_TIMEOUT %q: must be a positive duration", v)
		}
		cfg.FormStore.Timeout = d
	}

	setString(&cfg.Store.Host, "FORMSTORE_HOST")
	setString(&cfg.Store.Port, "FORMSTORE_PORT")
	setString(&cfg.Store.Backend, "FORMSTORE_BACKEND")
	cfg.Store.Backend = strings.ToLower(cfg.Store.Backend)
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.Store.AllowedOrigins = append(cfg.Store.AllowedOrigins, origin)
			}
		}
	}

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")
	cfg.Neo4j.Database = os.Getenv("NEO4J_DATABASE")

	cfg.Postgres.DSN = os.Getenv("POSTGRES_DSN")

	cfg.Sheets.CredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")
	cfg.Sheets.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	setString(&cfg.Sheets.Tab, "GOOGLE_SHEETS_TAB")

	var missingVars []string

	switch cfg.Store.Backend {
	case BackendMemory:
	case BackendNeo4j:
		if cfg.Neo4j.URI == "" {
			missingVars = append(missingVars, "NEO4J_URI")
		}
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	case BackendPostgres:
		if cfg.Postgres.DSN == "" {
			missingVars = append(missingVars, "POSTGRES_DSN")
		}
	default:
		return cfg, fmt.Errorf("unknown FORMSTORE_BACKEND %q (want memory, neo4j or postgres)", cfg.Store.Backend)
	}

	if cfg.Sheets.CredentialsPath != "" && cfg.Sheets.SpreadsheetID == "" {
		missingVars = append(missingVars, "GOOGLE_SHEETS_SPREADSHEET_ID")
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return cfg, nil
}

// SheetsEnabled reports whether submitted applications can be exported
func (c Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
