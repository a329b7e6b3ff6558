// Package extract pulls readable body text out of a live article page,
// stripping navigation, boilerplate and other non-content markup.
package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Selectors tried in order against the fetched page. News sites wrap body
// copy in wildly different containers; the bare "p" at the end is the last
// resort.
var contentSelectors = []string{
	"article p",
	".article-body p",
	".article-content p",
	".post-content p",
	".entry-content p",
	".story-body p",
	".content p",
	"main p",
	"#content p",
	"p",
}

// Line fragments that mark boilerplate rather than article text.
var junkIndicators = []string{
	"cookie", "subscribe", "newsletter", "sign up", "sign in", "log in",
	"advertisement", "sponsored", "read more", "click here", "follow us",
	"share this", "all rights reserved", "terms of service", "privacy policy",
}

// Extractor fetches a URL and reduces it to plain article text.
type Extractor struct {
	client *http.Client
}

func New(timeout time.Duration) *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: timeout},
	}
}

// Extract downloads the page and returns its body text. It makes exactly one
// attempt; the caller decides what a failure means.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "dailybrief/1.0 (+article text fetch)")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("load page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	text := extractParagraphs(doc)
	if text == "" {
		return "", fmt.Errorf("no article text found")
	}
	return text, nil
}

// extractParagraphs walks the selector chain and assembles paragraphs from
// the first selector that yields enough of them.
func extractParagraphs(doc *goquery.Document) string {
	for _, selector := range contentSelectors {
		var paragraphs []string
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.Join(strings.Fields(s.Text()), " ")
			if len(text) < 25 || isJunk(text) {
				return
			}
			paragraphs = append(paragraphs, text)
		})
		// Three real paragraphs means we hit the article body, not a
		// stray caption or teaser picked up by a too-broad selector.
		if len(paragraphs) >= 3 {
			return strings.Join(paragraphs, "\n\n")
		}
		if len(paragraphs) > 0 && selector == "p" {
			return strings.Join(paragraphs, "\n\n")
		}
	}
	return ""
}

func isJunk(line string) bool {
	lower := strings.ToLower(line)
	for _, indicator := range junkIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
