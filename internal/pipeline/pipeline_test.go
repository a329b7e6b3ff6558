package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"dailybrief/internal/enrich"
	"dailybrief/internal/news"
	"dailybrief/internal/source"
)

type stubSource struct {
	articles []news.Article
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) Fetch(ctx context.Context) []news.Article { return s.articles }

// countingExtractor records which URLs were fetched.
type countingExtractor struct {
	mu   sync.Mutex
	urls []string
	text string
	err  error
}

func (c *countingExtractor) extract(ctx context.Context, url string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls = append(c.urls, url)
	return c.text, c.err
}

func TestRunEmptyInputIsNoOp(t *testing.T) {
	ext := &countingExtractor{err: errors.New("never called")}
	p := New([]source.Source{stubSource{}}, enrich.New(500, 0, ext.extract), 5)

	got := p.Run(context.Background())
	if len(got) != 0 {
		t.Fatalf("got %d articles from empty sources", len(got))
	}
	if len(ext.urls) != 0 {
		t.Fatalf("enricher ran against empty pool")
	}
}

func TestRunTruncatesBeforeEnrichment(t *testing.T) {
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	var pool []news.Article
	for i := 0; i < 10; i++ {
		pool = append(pool, news.Article{
			Title:       fmt.Sprintf("Plain story number %d", i),
			URL:         fmt.Sprintf("https://e.com/%d", i),
			PublishedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	ext := &countingExtractor{err: errors.New("nothing extractable")}
	p := New([]source.Source{stubSource{articles: pool}}, enrich.New(500, 0, ext.extract), 3)

	_ = p.Run(context.Background())
	if len(ext.urls) != 3 {
		t.Fatalf("extraction attempted on %d records, want exactly the top 3", len(ext.urls))
	}
	// Equal scores, so recency decides: the three newest records.
	for _, url := range ext.urls {
		if url != "https://e.com/9" && url != "https://e.com/8" && url != "https://e.com/7" {
			t.Errorf("extraction attempted on %s, not a top-3 record", url)
		}
	}
}

func TestRunEndToEndDuplicateURL(t *testing.T) {
	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	content := strings.Repeat("c", 1000)
	laterContent := strings.Repeat("d", 1000)

	pool := []news.Article{
		{
			Title:       "First take on the story",
			URL:         "https://example.com/a?utm=1",
			PublishedAt: at,
			Content:     content,
		},
		{
			Title:       "Second take on the story",
			URL:         "https://example.com/a?utm=2",
			PublishedAt: at.Add(time.Hour),
			Content:     laterContent,
		},
	}

	ext := &countingExtractor{err: errors.New("should not be needed")}
	p := New([]source.Source{stubSource{articles: pool}}, enrich.New(500, 0, ext.extract), 5)

	got := p.Run(context.Background())
	if len(got) != 1 {
		t.Fatalf("got %d articles, want exactly 1", len(got))
	}
	if !got[0].PublishedAt.Equal(at.Add(time.Hour)) {
		t.Errorf("survivor is not the later-published record")
	}
	if got[0].Fulltext != laterContent {
		t.Errorf("Fulltext is not the survivor's content verbatim")
	}
	if len(ext.urls) != 0 {
		t.Errorf("extraction attempted despite sufficient content")
	}
}

func TestRunAllDroppedIsNoOp(t *testing.T) {
	pool := []news.Article{
		{Title: "No body anywhere", URL: "https://e.com/1", PublishedAt: time.Now()},
	}
	ext := &countingExtractor{err: errors.New("dead page")}
	p := New([]source.Source{stubSource{articles: pool}}, enrich.New(500, 0, ext.extract), 5)

	if got := p.Run(context.Background()); len(got) != 0 {
		t.Fatalf("got %d articles, want 0 after all records dropped", len(got))
	}
}

func TestRunOutputAlwaysCarriesFulltext(t *testing.T) {
	pool := []news.Article{
		{Title: "Major election coverage", URL: "https://e.com/1", PublishedAt: time.Now(), Content: strings.Repeat("a", 600)},
		{Title: "Unrelated note", URL: "https://e.com/2", PublishedAt: time.Now(), Description: "tiny"},
	}
	ext := &countingExtractor{text: strings.Repeat("b", 600)}
	p := New([]source.Source{stubSource{articles: pool}}, enrich.New(500, 0, ext.extract), 5)

	got := p.Run(context.Background())
	if len(got) != 2 {
		t.Fatalf("got %d articles, want 2", len(got))
	}
	for _, a := range got {
		if a.Fulltext == "" {
			t.Errorf("article %q left the pipeline without fulltext", a.Title)
		}
	}
}
