// Package config loads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/asisr38/scrapper/internal/dataset"
	"github.com/asisr38/scrapper/internal/scraper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	// Dataset settings
	DataDir        string
	DatasetPath    string // env override: the only dataset read when set
	DatasetsConfig string // optional YAML list of default datasets

	// HTTP settings
	HTTPPort     int
	FetchTimeout time.Duration
	UserAgent    string

	// Remote classifier settings
	RemoteProvider    string // gemini | openai | "" (none)
	GeminiAPIKey      string
	GeminiModel       string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	RemoteTimeout     time.Duration
	RemoteMaxChars    int
	MaxRemoteRequests int // per day, 0 = unlimited

	// App settings
	Debug         bool
	CacheTTL      time.Duration
	ScrapeDelay   time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// Load reads .env when present, then the environment, over the defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		// Default values
		DataDir:        "public",
		HTTPPort:       8080,
		FetchTimeout:   45 * time.Second,
		UserAgent:      scraper.DefaultUserAgent,
		RemoteTimeout:  20 * time.Second,
		RemoteMaxChars: 8000,
		CacheTTL:       30 * time.Minute,
		ScrapeDelay:    800 * time.Millisecond,
		RetryAttempts:  5,
		RetryDelay:     600 * time.Millisecond,
	}

	cfg.DataDir = getEnvOrDefault("DATA_DIR", cfg.DataDir)
	cfg.DatasetPath = os.Getenv("DATASET_PATH")
	cfg.DatasetsConfig = os.Getenv("DATASETS_CONFIG")

	cfg.HTTPPort = getEnvIntOrDefault("HTTP_PORT", cfg.HTTPPort)
	cfg.FetchTimeout = getEnvSecondsOrDefault("FETCH_TIMEOUT_SEC", cfg.FetchTimeout)
	cfg.UserAgent = getEnvOrDefault("USER_AGENT", cfg.UserAgent)

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = os.Getenv("GEMINI_MODEL")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	cfg.OpenAIModel = os.Getenv("OPENAI_MODEL")
	cfg.RemoteProvider = strings.ToLower(strings.TrimSpace(os.Getenv("REMOTE_PROVIDER")))
	if cfg.RemoteProvider == "" {
		switch {
		case cfg.GeminiAPIKey != "":
			cfg.RemoteProvider = ProviderGemini
		case cfg.OpenAIAPIKey != "":
			cfg.RemoteProvider = ProviderOpenAI
		}
	}
	cfg.RemoteTimeout = getEnvSecondsOrDefault("REMOTE_TIMEOUT_SEC", cfg.RemoteTimeout)
	cfg.RemoteMaxChars = getEnvIntOrDefault("REMOTE_MAX_CHARS", cfg.RemoteMaxChars)
	cfg.MaxRemoteRequests = getEnvIntOrDefault("MAX_REMOTE_REQUESTS", 0)

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.CacheTTL = time.Duration(val) * time.Minute
		}
	}
	if v := os.Getenv("SCRAPE_DELAY_MS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.ScrapeDelay = time.Duration(val) * time.Millisecond
		}
	}
	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)
	if v := os.Getenv("RETRY_DELAY_MS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.RetryDelay = time.Duration(val) * time.Millisecond
		}
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvSecondsOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	switch c.RemoteProvider {
	case "":
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when REMOTE_PROVIDER=gemini")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when REMOTE_PROVIDER=openai")
		}
	default:
		return fmt.Errorf("REMOTE_PROVIDER must be 'gemini' or 'openai'")
	}
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.RemoteMaxChars <= 0 {
		return fmt.Errorf("REMOTE_MAX_CHARS must be positive")
	}
	if c.MaxRemoteRequests < 0 {
		return fmt.Errorf("MAX_REMOTE_REQUESTS must not be negative")
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("RETRY_ATTEMPTS must be at least 1")
	}
	return nil
}

// DatasetsFile is the YAML layout of DATASETS_CONFIG:
//
//	datasets:
//	  - news.json
//	  - https://example.org/insights.json
type DatasetsFile struct {
	Datasets []string `yaml:"datasets"`
}

// LoadDatasets reads a datasets YAML file.
func LoadDatasets(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var file DatasetsFile
	if err := yaml.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	out := file.Datasets[:0]
	for _, d := range file.Datasets {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out, nil
}

// Sources builds the dataset sources: the YAML list when configured, else one
// JSON file per listing section.
func (c *Config) Sources() (dataset.Sources, error) {
	defaults := dataset.DefaultLocations(scraper.SectionKeys())
	if c.DatasetsConfig != "" {
		list, err := LoadDatasets(c.DatasetsConfig)
		if err != nil {
			return dataset.Sources{}, err
		}
		defaults = list
	}
	return dataset.Sources{DataDir: c.DataDir, EnvPath: c.DatasetPath, Defaults: defaults}, nil
}
