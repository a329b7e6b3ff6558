package source

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"dailybrief/internal/logger"
	"dailybrief/internal/news"
)

// General-news feeds used when no feeds config file is present.
var defaultFeeds = []string{
	"https://feeds.npr.org/1001/rss.xml",
	"https://feeds.bbci.co.uk/news/rss.xml",
	"https://feeds.bbci.co.uk/news/politics/rss.xml",
	"https://feeds.bbci.co.uk/news/world/rss.xml",
	"https://www.theguardian.com/world/rss",
	"https://www.theguardian.com/politics/rss",
	"https://rss.nytimes.com/services/xml/rss/nyt/World.xml",
	"https://rss.nytimes.com/services/xml/rss/nyt/Politics.xml",
	"https://feeds.foxnews.com/foxnews/latest",
	"https://feeds.foxnews.com/foxnews/politics",
}

// FeedsConfig is the YAML config structure:
//
//	feeds:
//	  - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the RSS feed list from a YAML file. A missing or empty
// file falls back to the built-in default feed set.
func LoadFeeds(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("feeds config not readable, using defaults", "path", path, "error", err)
		return defaultFeeds
	}
	defer f.Close()

	var cfg FeedsConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		logger.Warn("feeds config not parseable, using defaults", "path", path, "error", err)
		return defaultFeeds
	}
	if len(cfg.Feeds) == 0 {
		return defaultFeeds
	}
	return cfg.Feeds
}

// RSS fetches articles from a list of RSS/Atom feeds.
type RSS struct {
	FeedURLs []string
	Timeout  time.Duration
}

func NewRSS(feedURLs []string, timeout time.Duration) *RSS {
	return &RSS{FeedURLs: feedURLs, Timeout: timeout}
}

func (r *RSS) Name() string { return "rss" }

// Fetch downloads and parses every feed. A feed that fails to load or parse
// is logged and skipped; the rest still contribute.
func (r *RSS) Fetch(ctx context.Context) []news.Article {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: r.Timeout}

	var articles []news.Article
	okCount := 0

	for _, feedURL := range r.FeedURLs {
		feed, err := parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			logger.Warn("rss feed failed", "url", feedURL, "error", err)
			continue
		}
		okCount++

		sourceName := strings.TrimSpace(feed.Title)
		if sourceName == "" {
			sourceName = "Unknown RSS"
		}

		for _, item := range feed.Items {
			articles = append(articles, news.Article{
				Title:       strings.TrimSpace(item.Title),
				URL:         item.Link,
				SourceName:  sourceName,
				PublishedAt: entryPublished(item),
				Description: stripMarkup(item.Description),
				// RSS never carries a full body; the enricher's live
				// extraction exists for exactly this case.
				Content:    "",
				SourceKind: news.KindRSS,
			})
		}
	}

	logger.Info("rss feeds processed", "ok", okCount, "total", len(r.FeedURLs))
	return articles
}

// entryPublished picks the entry's published time, falling back to updated,
// then to the fetch time when the feed supplies neither.
func entryPublished(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	return time.Now().UTC()
}

// stripMarkup reduces a feed summary to plain text. Feed summaries routinely
// embed HTML; goquery's text extraction handles malformed fragments without
// erroring.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}
