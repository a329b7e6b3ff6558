// Package pipeline sequences the ingestion stages: gather from all sources,
// deduplicate and rank, truncate, enrich.
package pipeline

import (
	"context"
	"time"

	"dailybrief/internal/enrich"
	"dailybrief/internal/logger"
	"dailybrief/internal/metrics"
	"dailybrief/internal/news"
	"dailybrief/internal/source"
)

type Pipeline struct {
	sources     []source.Source
	enricher    *enrich.Enricher
	maxArticles int
}

func New(sources []source.Source, enricher *enrich.Enricher, maxArticles int) *Pipeline {
	return &Pipeline{
		sources:     sources,
		enricher:    enricher,
		maxArticles: maxArticles,
	}
}

// Run executes one full pass and returns the enriched, ranked articles.
// Truncation happens before enrichment so the expensive network work is only
// paid for records that survived ranking. An empty result at any stage is a
// terminal no-op, never an error: the pipeline has performed no writes, so
// there is nothing to clean up.
func (p *Pipeline) Run(ctx context.Context) []news.Article {
	start := time.Now()
	defer func() {
		metrics.Global.RecordRun(time.Since(start))
	}()

	gathered := source.Gather(ctx, p.sources)
	if len(gathered) == 0 {
		logger.Info("no articles from any source, nothing to process")
		return nil
	}
	logger.Info("gathered articles", "total", len(gathered))

	ranked := news.Dedupe(gathered)

	if p.maxArticles > 0 && len(ranked) > p.maxArticles {
		logger.Info("limiting articles", "from", len(ranked), "to", p.maxArticles)
		ranked = ranked[:p.maxArticles]
	}

	enriched := p.enricher.Enrich(ctx, ranked)
	if len(enriched) == 0 {
		logger.Info("no articles with sufficient content, nothing to process")
		return nil
	}
	return enriched
}
