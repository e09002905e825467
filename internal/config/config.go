package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"bizfinder/internal/storage"
)

// Vector backends.
const (
	BackendMemory = "memory"
	BackendQdrant = "qdrant"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	DBDriver      string
	DBDSN         string
	ListingsTable string

	LLMBaseURL     string
	LLMModelName   string
	LLMAPIKey      string
	LLMTimeout     time.Duration
	LLMTemperature float32
	LLMAutoload    bool

	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingVectorSize int // 0 skips the startup size check
	EmbeddingBatchSize  int

	VectorBackend          string
	QdrantURL              string
	QdrantCollectionPrefix string

	SpellThreshold    float64
	CityThreshold     float64
	SimilarCategories int
	ResultLimit       int
	CandidateLimit    int
	MinReviews        int

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// A .env file in the current directory or one of its five nearest parents is loaded first;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		APIPort:                getEnv("API_PORT", "8000"),
		LogFormat:              strings.ToLower(getEnv("LOG_FORMAT", "text")),
		DBDriver:               getEnv("DB_DRIVER", storage.DriverSQLite),
		DBDSN:                  getEnv("DB_DSN", "./data/listings.db"),
		ListingsTable:          getEnv("LISTINGS_TABLE", storage.DefaultTable),
		LLMBaseURL:             getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:           getEnv("LLM_MODEL", "Phi-3-mini-4k-instruct-q4"),
		LLMAPIKey:              getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:       getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName:     getEnv("EMBEDDING_MODEL_NAME", "all-MiniLM-L6-v2"),
		VectorBackend:          strings.ToLower(getEnv("VECTOR_BACKEND", BackendMemory)),
		QdrantURL:              getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollectionPrefix: getEnv("QDRANT_COLLECTION_PREFIX", "bizfinder"),
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	p := parser{}
	cfg.LLMTimeout = p.durationVar("LLM_TIMEOUT", 20*time.Second)
	cfg.LLMTemperature = float32(p.floatVar("LLM_TEMPERATURE", 0.2))
	cfg.LLMAutoload = p.boolVar("LLM_AUTOLOAD", false)
	cfg.EmbeddingVectorSize = p.intVar("EMBEDDING_VECTOR_SIZE", 384)
	cfg.EmbeddingBatchSize = p.intVar("EMBEDDING_BATCH_SIZE", 64)
	cfg.SpellThreshold = p.floatVar("SPELL_THRESHOLD", 85)
	cfg.CityThreshold = p.floatVar("CITY_THRESHOLD", 85)
	cfg.SimilarCategories = p.intVar("SIMILAR_CATEGORIES", 5)
	cfg.ResultLimit = p.intVar("RESULT_LIMIT", 5)
	cfg.CandidateLimit = p.intVar("CANDIDATE_LIMIT", 50)
	cfg.MinReviews = p.intVar("MIN_REVIEWS", 5)
	cfg.RateLimitRPS = p.floatVar("RATE_LIMIT_RPS", 10)
	cfg.RateLimitBurst = p.intVar("RATE_LIMIT_BURST", 20)
	if p.err != nil {
		return nil, p.err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create the directory for the SQLite file if it doesn't exist
	if cfg.DBDriver == storage.DriverSQLite && !strings.HasPrefix(cfg.DBDSN, "file:") && cfg.DBDSN != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBDSN), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.DBDriver != storage.DriverSQLite && c.DBDriver != storage.DriverPostgres {
		return fmt.Errorf("DB_DRIVER must be %s or %s, got %q", storage.DriverSQLite, storage.DriverPostgres, c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if !storage.ValidTableName(c.ListingsTable) {
		return fmt.Errorf("LISTINGS_TABLE %q is not a valid identifier", c.ListingsTable)
	}
	if c.VectorBackend != BackendMemory && c.VectorBackend != BackendQdrant {
		return fmt.Errorf("VECTOR_BACKEND must be %s or %s, got %q", BackendMemory, BackendQdrant, c.VectorBackend)
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be greater than 0")
	}
	if c.EmbeddingVectorSize < 0 {
		return fmt.Errorf("EMBEDDING_VECTOR_SIZE must not be negative")
	}
	if c.EmbeddingBatchSize <= 0 {
		return fmt.Errorf("EMBEDDING_BATCH_SIZE must be greater than 0")
	}
	for name, v := range map[string]float64{"SPELL_THRESHOLD": c.SpellThreshold, "CITY_THRESHOLD": c.CityThreshold} {
		if v <= 0 || v > 100 {
			return fmt.Errorf("%s must be greater than 0 and at most 100", name)
		}
	}
	if c.SimilarCategories < 0 {
		return fmt.Errorf("SIMILAR_CATEGORIES must not be negative")
	}
	if c.ResultLimit <= 0 {
		return fmt.Errorf("RESULT_LIMIT must be greater than 0")
	}
	if c.CandidateLimit < c.ResultLimit {
		return fmt.Errorf("CANDIDATE_LIMIT must be at least RESULT_LIMIT")
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must not be negative")
	}
	return nil
}

func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i <= 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}

// parser reads typed variables and keeps the first error.
type parser struct {
	err error
}

func (p *parser) lookup(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != "" && p.err == nil
}

func (p *parser) intVar(key string, def int) int {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.err = fmt.Errorf("%s must be a valid integer: %w", key, err)
		return def
	}
	return n
}

func (p *parser) floatVar(key string, def float64) float64 {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.err = fmt.Errorf("%s must be a valid number: %w", key, err)
		return def
	}
	return f
}

func (p *parser) boolVar(key string, def bool) bool {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.err = fmt.Errorf("%s must be true or false: %w", key, err)
		return def
	}
	return b
}

func (p *parser) durationVar(key string, def time.Duration) time.Duration {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.err = fmt.Errorf("%s must be a valid duration: %w", key, err)
		return def
	}
	return d
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
