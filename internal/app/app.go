// Package app wires configuration, sources, pipeline, summarizer and mailer
// into one run of the daily brief.
package app

import (
	"context"
	"fmt"
	"time"

	"dailybrief/internal/config"
	"dailybrief/internal/enrich"
	"dailybrief/internal/extract"
	"dailybrief/internal/logger"
	"dailybrief/internal/mail"
	"dailybrief/internal/metrics"
	"dailybrief/internal/news"
	"dailybrief/internal/pipeline"
	"dailybrief/internal/ratelimit"
	"dailybrief/internal/source"
	"dailybrief/internal/summarize"
)

// Options are the per-invocation CLI overrides layered on top of Config.
type Options struct {
	Query   string
	RSSOnly bool
	Preview bool
}

// Run executes one complete brief: gather, dedupe, rank, enrich, summarize,
// render, deliver. An empty pipeline result is a clean no-op. The pipeline
// performs no writes, so cancellation mid-run leaves nothing to clean up.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	sources := buildSources(cfg, opts)

	extractor := extract.New(cfg.ExtractTimeout)
	enricher := enrich.New(cfg.MinChars, cfg.ExtractInterval, extractor.Extract)

	articles := pipeline.New(sources, enricher, cfg.MaxArticles).Run(ctx)
	if len(articles) == 0 {
		logger.Info("no articles to process, nothing to send")
		return nil
	}

	articles = summarizeAll(ctx, cfg, articles)

	dateStr := time.Now().Format("Monday, January 2, 2006")
	html, err := mail.Render(articles, dateStr)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	if opts.Preview {
		fmt.Println("==================================================")
		fmt.Println("EMAIL PREVIEW")
		fmt.Println("==================================================")
		fmt.Println(html)
		fmt.Println("==================================================")
		return nil
	}

	subject := "Daily News Brief - " + dateStr
	mailer := mail.NewMailer(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailTo)
	if err := mailer.Send(ctx, subject, html); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func buildSources(cfg *config.Config, opts Options) []source.Source {
	var sources []source.Source
	if !opts.RSSOnly {
		sources = append(sources,
			source.NewNewsAPI(cfg.NewsAPIKey, opts.Query, cfg.ApprovedSources, cfg.RequestTimeout),
			source.NewNYT(cfg.NYTAPIKey, opts.Query, cfg.RequestTimeout),
		)
	}
	sources = append(sources, source.NewRSS(source.LoadFeeds(cfg.FeedsConfigPath), cfg.RequestTimeout))
	return sources
}

// summarizeAll attaches summaries, degrading to extractive fallbacks when no
// LLM is configured or a call fails. Articles are never lost here.
func summarizeAll(ctx context.Context, cfg *config.Config, articles []news.Article) []news.Article {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("no Gemini API key configured, using fallback summaries")
		out := make([]news.Article, len(articles))
		for i, a := range articles {
			a.Summary = summarize.Fallback(a)
			out[i] = a
		}
		return out
	}

	limiter := ratelimit.New(cfg.MaxSummaryRequests, cfg.SummaryInterval)
	client, err := summarize.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, limiter)
	if err != nil {
		logger.Error("gemini client unavailable, using fallback summaries", "error", err)
		out := make([]news.Article, len(articles))
		for i, a := range articles {
			a.Summary = summarize.Fallback(a)
			out[i] = a
		}
		return out
	}
	defer client.Close()

	return client.SummarizeAll(ctx, articles)
}
