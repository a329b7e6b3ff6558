// Package source contains one adapter per news provider. Every adapter maps
// its provider's schema onto news.Article and swallows its own failures:
// network errors, bad payloads and missing credentials all come back as an
// empty slice so the pipeline degrades to fewer sources instead of aborting.
package source

import (
	"context"
	"sync"
	"time"

	"github.com/araddon/dateparse"

	"dailybrief/internal/logger"
	"dailybrief/internal/metrics"
	"dailybrief/internal/news"
)

// Source is one news provider. Fetch never returns an error; failures are
// logged at the adapter boundary and yield an empty result.
type Source interface {
	Name() string
	Fetch(ctx context.Context) []news.Article
}

// Gather fans out over all sources concurrently and merges their output.
// Each adapter owns its slice until it lands on the results channel, so no
// locking is needed beyond the channel itself.
func Gather(ctx context.Context, sources []Source) []news.Article {
	type result struct {
		name     string
		articles []news.Article
	}

	results := make(chan result, len(sources))
	var wg sync.WaitGroup

	for _, src := range sources {
		wg.Add(1)
		go func(s Source) {
			defer wg.Done()
			results <- result{name: s.Name(), articles: s.Fetch(ctx)}
		}(src)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var merged []news.Article
	for r := range results {
		logger.Info("source fetched", "source", r.name, "articles", len(r.articles))
		metrics.Global.AddArticlesFetched(int64(len(r.articles)))
		merged = append(merged, r.articles...)
	}
	return merged
}

// parseWhen parses a provider timestamp defensively. Providers disagree on
// formats and occasionally ship garbage; anything unparseable becomes the
// fetch time rather than failing the record.
func parseWhen(raw string) time.Time {
	if raw == "" {
		return time.Now().UTC()
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Now().UTC()
	}
	return t.UTC()
}
