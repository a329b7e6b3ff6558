// Package enrich resolves a usable body text for each ranked article before
// it is handed to the summarizer.
package enrich

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"dailybrief/internal/logger"
	"dailybrief/internal/metrics"
	"dailybrief/internal/news"
)

// ExtractFunc fetches and extracts article text from a URL. One attempt,
// bounded by the extractor's own timeout.
type ExtractFunc func(ctx context.Context, url string) (string, error)

// Enricher attaches Fulltext to articles via a strict preference chain:
//
//  1. Content, when longer than MinChars.
//  2. Description, when longer than MinChars.
//  3. Live extraction from the article URL, when it succeeds and beats
//     MinChars.
//  4. Description again, unconditionally, as long as it is non-empty.
//
// An article that resolves nothing is dropped; nothing without Fulltext may
// leave the pipeline. Live extractions are throttled so a run doesn't
// hammer origin servers.
type Enricher struct {
	MinChars int
	Extract  ExtractFunc

	limiter *rate.Limiter
}

// New builds an Enricher. interval spaces out live extraction requests;
// zero disables the throttle (tests).
func New(minChars int, interval time.Duration, extract ExtractFunc) *Enricher {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Enricher{
		MinChars: minChars,
		Extract:  extract,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Enrich runs the preference chain over every article and returns the
// survivors, order preserved. Extraction failures are logged and fall
// through; an empty result is a normal outcome, not an error.
func (e *Enricher) Enrich(ctx context.Context, items []news.Article) []news.Article {
	enriched := make([]news.Article, 0, len(items))

	for _, item := range items {
		fulltext := e.resolve(ctx, item)
		if fulltext == "" {
			logger.Debug("dropping article with insufficient content", "title", item.Title)
			metrics.Global.IncrementArticlesDropped()
			continue
		}
		item.Fulltext = fulltext
		enriched = append(enriched, item)
		metrics.Global.IncrementArticlesEnriched()
	}

	logger.Info("enriched articles", "in", len(items), "out", len(enriched))
	return enriched
}

func (e *Enricher) resolve(ctx context.Context, item news.Article) string {
	if len(item.Content) > e.MinChars {
		return item.Content
	}
	if len(item.Description) > e.MinChars {
		return item.Description
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return item.Description
	}
	text, err := e.Extract(ctx, item.URL)
	if err != nil {
		logger.Debug("extraction failed", "url", item.URL, "error", err)
	} else if len(text) > e.MinChars {
		return text
	}

	// Last resort: a short description still beats dropping the article.
	return item.Description
}
