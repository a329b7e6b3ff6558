package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"dailybrief/internal/app"
	"dailybrief/internal/config"
	"dailybrief/internal/logger"
	"dailybrief/internal/metrics"
)

const defaultQuery = "politics OR world OR technology OR science OR business OR economy"

func main() {
	query := flag.String("query", defaultQuery, "search query for the keyword APIs")
	rssOnly := flag.Bool("rss-only", false, "only fetch from RSS feeds, skip the keyword APIs")
	preview := flag.Bool("preview", false, "print the rendered HTML instead of sending email")
	maxArticles := flag.Int("max-articles", 0, "maximum articles to process (overrides MAX_ARTICLES)")
	minChars := flag.Int("min-chars", 0, "minimum characters per article (overrides MIN_CHARS_PER_ARTICLE)")
	feedsPath := flag.String("feeds", "", "path to the feeds YAML file (overrides FEEDS_CONFIG_PATH)")
	schedule := flag.String("schedule", "", "cron expression for daemon mode; empty runs once and exits")
	flag.Parse()

	logger.Init()
	cfg := config.Load()

	if *maxArticles > 0 {
		cfg.MaxArticles = *maxArticles
	}
	if *minChars > 0 {
		cfg.MinChars = *minChars
	}
	if *feedsPath != "" {
		cfg.FeedsConfigPath = *feedsPath
	}

	if !*preview {
		if err := cfg.Validate(); err != nil {
			logger.Error("configuration validation failed", "error", err)
			os.Exit(1)
		}
	}

	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := app.Options{Query: *query, RSSOnly: *rssOnly, Preview: *preview}

	if *schedule == "" {
		if err := app.Run(ctx, cfg, opts); err != nil {
			logger.Error("run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(*schedule, func() {
		if err := app.Run(ctx, cfg, opts); err != nil {
			logger.Error("scheduled run failed", "error", err)
		}
	}); err != nil {
		logger.Error("invalid schedule expression", "schedule", *schedule, "error", err)
		os.Exit(1)
	}

	logger.Info("scheduler started", "schedule", *schedule)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("scheduler stopped")
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("monitoring server starting", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("monitoring server error", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(metrics.Global.GetStats())
}
