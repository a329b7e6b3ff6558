// Package mail renders the daily brief as HTML and delivers it through the
// SendGrid REST API.
package mail

import (
	"fmt"
	"html/template"
	"strings"

	"dailybrief/internal/news"
)

// Section keyword heuristics, checked against title plus summary.
var (
	chipKeywords = []string{
		"chip", "gpu", "cpu", "processor", "hardware",
		"nvidia", "amd", "intel", "semiconductor",
	}
	policyKeywords = []string{
		"regulation", "policy", "law", "government",
		"fcc", "ftc", "congress", "senate", "legislation",
	}
	bigModelKeywords = []string{
		"gpt", "llm", "openai", "anthropic", "google", "meta", "microsoft",
		"large language model", "foundation model",
	}
)

const (
	sectionChips     = "Chips & Hardware"
	sectionPolicy    = "Policy & Regulation"
	sectionBigModels = "Big Models & Platforms"
	sectionGeneral   = "General News"
)

// Section groups articles under one digest heading.
type Section struct {
	Name     string
	Articles []news.Article
}

// Categorize buckets articles into ordered digest sections, first match
// wins. Empty sections are omitted.
func Categorize(articles []news.Article) []Section {
	buckets := map[string][]news.Article{}

	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Summary)
		name := sectionGeneral
		switch {
		case containsAny(text, chipKeywords):
			name = sectionChips
		case containsAny(text, policyKeywords):
			name = sectionPolicy
		case containsAny(text, bigModelKeywords):
			name = sectionBigModels
		}
		buckets[name] = append(buckets[name], a)
	}

	var sections []Section
	for _, name := range []string{sectionChips, sectionPolicy, sectionBigModels, sectionGeneral} {
		if articles := buckets[name]; len(articles) > 0 {
			sections = append(sections, Section{Name: name, Articles: articles})
		}
	}
	return sections
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Georgia, serif; max-width: 680px; margin: 0 auto; color: #1a1a1a; }
    h1 { font-size: 22px; border-bottom: 2px solid #1a1a1a; padding-bottom: 8px; }
    h2 { font-size: 17px; color: #444; margin-top: 28px; }
    .meta { color: #777; font-size: 13px; }
    .article { margin: 18px 0; }
    .summary { white-space: pre-wrap; font-size: 14px; line-height: 1.5; }
    a { color: #0b5394; }
  </style>
</head>
<body>
  <h1>Daily News Brief</h1>
  <p class="meta">{{.Date}} &middot; {{.Count}} article{{if ne .Count 1}}s{{end}}</p>
{{range .Sections}}  <h2>{{.Name}}</h2>
{{range .Articles}}  <div class="article">
    <a href="{{.URL}}"><strong>{{.Title}}</strong></a>
    <div class="meta">{{.SourceName}} &middot; {{.PublishedAt.Format "January 2, 2006 15:04 MST"}}</div>
    <div class="summary">{{.Summary}}</div>
  </div>
{{end}}{{end}}</body>
</html>
`))

// Render produces the digest HTML for the given articles and date line.
func Render(articles []news.Article, dateStr string) (string, error) {
	data := struct {
		Date     string
		Count    int
		Sections []Section
	}{
		Date:     dateStr,
		Count:    len(articles),
		Sections: Categorize(articles),
	}

	var b strings.Builder
	if err := emailTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return b.String(), nil
}
