package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every knob the app needs. It is built once in main and
// passed down explicitly; nothing reads the environment after Load returns.
type Config struct {
	// Data sources
	NewsAPIKey      string
	NYTAPIKey       string
	ApprovedSources []string // NewsAPI source ids, comma-separated in env
	FeedsConfigPath string

	// LLM (Gemini)
	GeminiAPIKey       string
	GeminiModel        string
	MaxSummaryRequests int           // per-run cap, 0 = unlimited
	SummaryInterval    time.Duration // minimum gap between LLM calls

	// Email delivery
	SendGridAPIKey string
	EmailTo        string
	EmailFrom      string

	// Pipeline behavior
	MaxArticles     int
	MinChars        int
	RequestTimeout  time.Duration // source adapter fetches
	ExtractTimeout  time.Duration // per-article live extraction
	ExtractInterval time.Duration // outbound throttle between extractions
}

// Load reads configuration from the environment, after loading a .env file
// if one is present. Missing keys fall back to defaults; Validate is left to
// the caller so preview runs can skip it.
func Load() *Config {
	// Absence of .env is the normal case in CI and under cron.
	_ = godotenv.Load()

	cfg := &Config{
		FeedsConfigPath:    "configs/feeds.yaml",
		GeminiModel:        "gemini-1.5-flash",
		MaxSummaryRequests: 25,
		SummaryInterval:    500 * time.Millisecond,
		MaxArticles:        5,
		MinChars:           500,
		RequestTimeout:     30 * time.Second,
		ExtractTimeout:     10 * time.Second,
		ExtractInterval:    100 * time.Millisecond,
	}

	cfg.NewsAPIKey = os.Getenv("NEWSAPI_KEY")
	cfg.NYTAPIKey = os.Getenv("NYT_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	cfg.EmailTo = os.Getenv("EMAIL_TO")
	cfg.EmailFrom = os.Getenv("EMAIL_FROM")

	if sources := os.Getenv("APPROVED_SOURCES"); sources != "" {
		for _, s := range strings.Split(sources, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.ApprovedSources = append(cfg.ApprovedSources, s)
			}
		}
	}

	if path := os.Getenv("FEEDS_CONFIG_PATH"); path != "" {
		cfg.FeedsConfigPath = path
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.GeminiModel = model
	}

	cfg.MaxSummaryRequests = getEnvIntOrDefault("MAX_SUMMARY_REQUESTS", cfg.MaxSummaryRequests)
	cfg.MaxArticles = getEnvIntOrDefault("MAX_ARTICLES", cfg.MaxArticles)
	cfg.MinChars = getEnvIntOrDefault("MIN_CHARS_PER_ARTICLE", cfg.MinChars)

	if v := getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("EXTRACT_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.ExtractTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("EXTRACT_INTERVAL_MS", 0); v > 0 {
		cfg.ExtractInterval = time.Duration(v) * time.Millisecond
	}

	return cfg
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks the credentials a real (non-preview) run cannot do
// without. Source API keys are deliberately not required: an adapter with no
// key degrades to an empty result instead of failing the run.
func (c *Config) Validate() error {
	var missing []string
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.SendGridAPIKey == "" {
		missing = append(missing, "SENDGRID_API_KEY")
	}
	if c.EmailTo == "" {
		missing = append(missing, "EMAIL_TO")
	}
	if c.EmailFrom == "" {
		missing = append(missing, "EMAIL_FROM")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
