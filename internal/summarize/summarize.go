// Package summarize turns enriched articles into short cited briefs via
// Gemini. It sits outside the core pipeline: the pipeline's contract ends at
// enriched articles, and any summarization failure degrades to a fallback
// text instead of losing the article.
package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"dailybrief/internal/logger"
	"dailybrief/internal/metrics"
	"dailybrief/internal/news"
	"dailybrief/internal/ratelimit"
	"dailybrief/internal/retry"
)

// Keep prompts inside the model's context window.
const maxPromptChars = 8000

const systemPrompt = `You write faithful, concise news summaries with analysis and citations.
- Summarize core facts in 3-4 bullets.
- Provide 1-2 sentences of analysis on the significance or implications.
- Link to the original source using the provided URL; do not invent sources.
- Keep analysis balanced and fact-based.
- Target 120-160 words per article.`

type Client struct {
	client  *genai.Client
	model   string
	limiter *ratelimit.Limiter
}

func NewClient(ctx context.Context, apiKey, model string, limiter *ratelimit.Limiter) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, model: model, limiter: limiter}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// SummarizeAll attaches a summary to every article, in order. A failed or
// budget-limited call gets the fallback text; articles are never dropped at
// this stage.
func (c *Client) SummarizeAll(ctx context.Context, items []news.Article) []news.Article {
	out := make([]news.Article, len(items))
	for i, item := range items {
		logger.Info("summarizing article", "n", i+1, "of", len(items), "title", item.Title)

		summary, err := c.summarize(ctx, item)
		if err != nil {
			logger.Error("summarization failed", "title", item.Title, "error", err)
			summary = Fallback(item)
		} else {
			metrics.Global.IncrementSummariesGenerated()
		}

		item.Summary = summary
		out[i] = item
	}
	return out
}

func (c *Client) summarize(ctx context.Context, item news.Article) (string, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return "", err
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1)
	model.SetMaxOutputTokens(500)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	prompt := buildPrompt(item)

	var summary string
	err := retry.Do(ctx, retry.Config{Attempts: 3, Delay: 2 * time.Second, Backoff: true}, func() error {
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return err
		}
		text := responseText(resp)
		if text == "" {
			return fmt.Errorf("empty response from model")
		}
		summary = text
		return nil
	})
	return summary, err
}

func buildPrompt(item news.Article) string {
	dateStr := "Unknown date"
	if !item.PublishedAt.IsZero() {
		dateStr = item.PublishedAt.Format("January 2, 2006")
	}

	fulltext := item.Fulltext
	if utf8.RuneCountInString(fulltext) > maxPromptChars {
		runes := []rune(fulltext)
		trimmed := string(runes[:maxPromptChars])
		// Prefer ending on a sentence if one lands late enough.
		if idx := strings.LastIndex(trimmed, ". "); idx > maxPromptChars/2 {
			trimmed = trimmed[:idx+1]
		}
		fulltext = trimmed + "..."
	}

	return fmt.Sprintf(`Please summarize and analyze the following article:

TITLE: %s
SOURCE: %s
DATE: %s
URL: %s

FULL TEXT:
%s

Please provide a summary and analysis that:
- Contains 3-4 bullet points of core facts
- Includes 1-2 sentences of analysis on significance/implications
- Links to the original source using the provided URL
- Keeps analysis balanced and fact-based
- Targets 120-160 words total
- Includes a citation at the end: [Source: %s]

Summary and Analysis:`,
		item.Title, item.SourceName, dateStr, item.URL, fulltext, item.SourceName)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}

// Fallback produces a serviceable summary from the article's own text when
// the model is unavailable: the first couple of substantial sentences, plus
// the citation the template expects.
func Fallback(item news.Article) string {
	text := strings.TrimSpace(item.Fulltext)
	if text == "" {
		text = strings.TrimSpace(item.Description)
	}

	var picked []string
	for _, sentence := range strings.Split(text, ". ") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < 25 {
			continue
		}
		picked = append(picked, sentence)
		if len(picked) >= 2 {
			break
		}
	}

	summary := strings.Join(picked, ". ")
	if summary == "" {
		if utf8.RuneCountInString(text) > 200 {
			summary = string([]rune(text)[:200]) + "..."
		} else {
			summary = text
		}
	} else if !strings.HasSuffix(summary, ".") {
		summary += "."
	}

	return fmt.Sprintf("%s [Source: %s]", summary, item.SourceName)
}
