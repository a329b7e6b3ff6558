package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"MAX_ARTICLES", "MIN_CHARS_PER_ARTICLE", "APPROVED_SOURCES", "EXTRACT_INTERVAL_MS"} {
		_ = os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.MaxArticles != 5 {
		t.Errorf("MaxArticles = %d, want 5", cfg.MaxArticles)
	}
	if cfg.MinChars != 500 {
		t.Errorf("MinChars = %d, want 500", cfg.MinChars)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.ExtractInterval != 100*time.Millisecond {
		t.Errorf("ExtractInterval = %v", cfg.ExtractInterval)
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	_ = os.Setenv("MAX_ARTICLES", "12")
	_ = os.Setenv("APPROVED_SOURCES", "npr, bbc-news ,fox-news")
	defer func() {
		_ = os.Unsetenv("MAX_ARTICLES")
		_ = os.Unsetenv("APPROVED_SOURCES")
	}()

	cfg := Load()
	if cfg.MaxArticles != 12 {
		t.Fatalf("MaxArticles = %d, want 12", cfg.MaxArticles)
	}
	want := []string{"npr", "bbc-news", "fox-news"}
	if len(cfg.ApprovedSources) != len(want) {
		t.Fatalf("ApprovedSources = %v", cfg.ApprovedSources)
	}
	for i, s := range want {
		if cfg.ApprovedSources[i] != s {
			t.Errorf("ApprovedSources[%d] = %q, want %q", i, cfg.ApprovedSources[i], s)
		}
	}
}

func TestValidateReportsAllMissing(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil for empty config")
	}

	cfg = &Config{
		GeminiAPIKey:   "k",
		SendGridAPIKey: "k",
		EmailTo:        "to@example.com",
		EmailFrom:      "from@example.com",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v for complete config", err)
	}
}
