package source

import (
	"context"
	"net/url"
	"strings"
	"time"

	"dailybrief/internal/logger"
	"dailybrief/internal/news"
)

const nytBaseURL = "https://api.nytimes.com/svc/search/v2/articlesearch.json"

// NYT fetches keyword-search results from the New York Times Article Search
// API, restricted to the Technology/Science/Business desks.
type NYT struct {
	APIKey  string
	Query   string
	Timeout time.Duration

	// BaseURL overrides the API endpoint in tests.
	BaseURL string
}

func NewNYT(apiKey, query string, timeout time.Duration) *NYT {
	return &NYT{APIKey: apiKey, Query: query, Timeout: timeout, BaseURL: nytBaseURL}
}

func (n *NYT) Name() string { return "nyt" }

type nytResponse struct {
	Response struct {
		Docs []struct {
			Headline struct {
				Main string `json:"main"`
			} `json:"headline"`
			WebURL        string `json:"web_url"`
			PubDate       string `json:"pub_date"`
			Abstract      string `json:"abstract"`
			LeadParagraph string `json:"lead_paragraph"`
		} `json:"docs"`
	} `json:"response"`
}

func (n *NYT) Fetch(ctx context.Context) []news.Article {
	if n.APIKey == "" {
		logger.Warn("no NYT API key configured, skipping NYT fetch")
		return nil
	}

	params := url.Values{}
	params.Set("q", n.Query)
	params.Set("api-key", n.APIKey)
	params.Set("sort", "newest")
	params.Set("fl", "headline,web_url,source,pub_date,abstract,lead_paragraph")
	params.Set("fq", "news_desk:(Technology OR Science OR Business)")

	var payload nytResponse
	if err := getJSON(ctx, n.BaseURL+"?"+params.Encode(), n.Timeout, &payload); err != nil {
		logger.Error("NYT fetch failed", "error", err)
		return nil
	}

	articles := make([]news.Article, 0, len(payload.Response.Docs))
	for _, doc := range payload.Response.Docs {
		articles = append(articles, news.Article{
			Title:       strings.TrimSpace(doc.Headline.Main),
			URL:         doc.WebURL,
			SourceName:  "The New York Times",
			PublishedAt: parseWhen(doc.PubDate),
			Description: strings.TrimSpace(doc.Abstract),
			Content:     strings.TrimSpace(doc.LeadParagraph),
			SourceKind:  news.KindKeywordAPI,
		})
	}
	return articles
}
