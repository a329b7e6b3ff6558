// Package news holds the article record that flows through the pipeline and
// the pure canonicalization, deduplication and ranking logic applied to it.
package news

import "time"

// SourceKind tags where an article came from. It is diagnostic only and
// never influences ranking.
type SourceKind string

const (
	KindKeywordAPI SourceKind = "keyword_api"
	KindRSS        SourceKind = "rss"
)

// Article is the unit flowing through the pipeline. Adapters create it,
// Dedupe attaches PriorityScore, the enricher attaches Fulltext. Title and
// URL are never mutated after creation; dedup keys are derived copies.
type Article struct {
	Title       string
	URL         string
	SourceName  string
	PublishedAt time.Time
	Description string
	Content     string // longer body already supplied by the source API, empty for RSS
	SourceKind  SourceKind

	PriorityScore int
	Fulltext      string // set by the enricher; records without it never leave the pipeline

	Summary string // set by the summarizer, outside the core pipeline
}
