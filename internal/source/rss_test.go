package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dailybrief/internal/news"
)

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Wire</title>
    <link>https://wire.example.com</link>
    <item>
      <title>Parliament votes on budget</title>
      <link>https://wire.example.com/budget</link>
      <pubDate>Sun, 01 Jun 2025 08:00:00 GMT</pubDate>
      <description>&lt;p&gt;The vote &lt;b&gt;passed&lt;/b&gt; narrowly.&lt;/p&gt;</description>
    </item>
    <item>
      <title>Undated story</title>
      <link>https://wire.example.com/undated</link>
      <description>No timestamp on this one.</description>
    </item>
  </channel>
</rss>`

func TestRSSFetchMapsEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeedXML))
	}))
	defer srv.Close()

	rss := NewRSS([]string{srv.URL}, 5*time.Second)
	before := time.Now().UTC()
	got := rss.Fetch(context.Background())

	if len(got) != 2 {
		t.Fatalf("got %d articles, want 2", len(got))
	}

	first := got[0]
	if first.Title != "Parliament votes on budget" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.SourceName != "Example Wire" {
		t.Errorf("SourceName = %q", first.SourceName)
	}
	if first.Description != "The vote passed narrowly." {
		t.Errorf("Description = %q, want markup stripped", first.Description)
	}
	if first.Content != "" {
		t.Errorf("Content = %q, RSS must not carry a body", first.Content)
	}
	if first.SourceKind != news.KindRSS {
		t.Errorf("SourceKind = %q", first.SourceKind)
	}
	want := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v, want %v", first.PublishedAt, want)
	}

	// Entry without a date defaults to fetch time.
	if got[1].PublishedAt.Before(before) {
		t.Errorf("undated entry PublishedAt = %v, want >= %v", got[1].PublishedAt, before)
	}
}

func TestRSSFetchSkipsBrokenFeeds(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testFeedXML))
	}))
	defer good.Close()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	rss := NewRSS([]string{broken.URL, good.URL}, 5*time.Second)
	got := rss.Fetch(context.Background())
	if len(got) != 2 {
		t.Fatalf("got %d articles from the surviving feed, want 2", len(got))
	}
}

func TestLoadFeedsFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feeds.yaml")
	content := "feeds:\n  - https://a.example.com/rss\n  - https://b.example.com/rss\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got := LoadFeeds(path)
	if len(got) != 2 || got[0] != "https://a.example.com/rss" {
		t.Fatalf("LoadFeeds = %v", got)
	}
}

func TestLoadFeedsMissingFileUsesDefaults(t *testing.T) {
	got := LoadFeeds(filepath.Join(t.TempDir(), "nope.yaml"))
	if len(got) == 0 {
		t.Fatal("expected built-in default feeds")
	}
}
