package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dailybrief/internal/logger"
	"dailybrief/internal/news"
)

const newsAPIBaseURL = "https://newsapi.org/v2/everything"

// Major outlets queried when no approved-source list is configured.
var defaultNewsAPISources = []string{"npr", "bbc-news", "fox-news"}

// NewsAPI fetches keyword-search results from newsapi.org.
type NewsAPI struct {
	APIKey          string
	Query           string
	ApprovedSources []string
	Timeout         time.Duration

	// BaseURL overrides the API endpoint in tests.
	BaseURL string
}

func NewNewsAPI(apiKey, query string, approvedSources []string, timeout time.Duration) *NewsAPI {
	return &NewsAPI{
		APIKey:          apiKey,
		Query:           query,
		ApprovedSources: approvedSources,
		Timeout:         timeout,
		BaseURL:         newsAPIBaseURL,
	}
}

func (n *NewsAPI) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Description string `json:"description"`
		Content     string `json:"content"`
	} `json:"articles"`
}

func (n *NewsAPI) Fetch(ctx context.Context) []news.Article {
	if n.APIKey == "" {
		logger.Warn("no NewsAPI key configured, skipping NewsAPI fetch")
		return nil
	}

	sources := n.ApprovedSources
	if len(sources) == 0 {
		sources = defaultNewsAPISources
	}

	params := url.Values{}
	params.Set("q", n.Query)
	params.Set("apiKey", n.APIKey)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "50")
	params.Set("sources", strings.Join(sources, ","))

	var payload newsAPIResponse
	if err := getJSON(ctx, n.BaseURL+"?"+params.Encode(), n.Timeout, &payload); err != nil {
		logger.Error("NewsAPI fetch failed", "error", err)
		return nil
	}
	if payload.Status != "ok" {
		logger.Error("NewsAPI returned error", "message", payload.Message)
		return nil
	}

	articles := make([]news.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		sourceName := a.Source.Name
		if sourceName == "" {
			sourceName = "Unknown"
		}
		articles = append(articles, news.Article{
			Title:       strings.TrimSpace(a.Title),
			URL:         a.URL,
			SourceName:  sourceName,
			PublishedAt: parseWhen(a.PublishedAt),
			Description: strings.TrimSpace(a.Description),
			Content:     strings.TrimSpace(a.Content),
			SourceKind:  news.KindKeywordAPI,
		})
	}
	return articles
}

// getJSON performs a single GET and decodes the JSON body. One attempt only:
// source fetches are not retried, a failed provider just contributes nothing
// to this run.
func getJSON(ctx context.Context, rawURL string, timeout time.Duration, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &httpStatusError{StatusCode: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type httpStatusError struct {
	StatusCode int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}
