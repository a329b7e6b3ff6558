package news

import (
	"regexp"
	"sort"
	"strings"

	"dailybrief/internal/logger"
	"dailybrief/internal/metrics"
)

// priorityKeywords is the fixed vocabulary used to rank surviving articles.
// Politics, world affairs, technology, science, economy and urgency terms;
// a title scores one point per matched keyword regardless of how often the
// keyword occurs.
var priorityKeywords = []string{
	"politics", "election", "government", "president", "congress", "senate",
	"world", "global", "international", "foreign", "diplomacy", "trade",
	"technology", "science", "innovation", "ai", "artificial intelligence",
	"climate", "economy", "business", "finance", "market",
	"breaking", "urgent", "crisis", "emergency", "important", "major",
}

// matchKeyword reports whether a lowercased keyword occurs in lowercased
// text. Tokens of three letters or fewer ("ai") are matched on word
// boundaries so they don't fire inside unrelated words like "said"; longer
// keywords and phrases use plain substring matching.
func matchKeyword(text, keyword string) bool {
	if len(keyword) > 3 || strings.Contains(keyword, " ") {
		return strings.Contains(text, keyword)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	return re.MatchString(text)
}

// Score computes the priority score for a title: the count of priority
// keywords present. Deterministic and idempotent, so re-scoring the same
// title always yields the same value.
func Score(title string) int {
	lower := strings.ToLower(title)
	score := 0
	for _, kw := range priorityKeywords {
		if matchKeyword(lower, kw) {
			score++
		}
	}
	return score
}

// Dedupe merges the raw pool from all adapters into a deduplicated,
// descending-priority slice:
//
//  1. Stable sort by PublishedAt descending, so when duplicates collide the
//     most recently published version is the one kept. A missing timestamp
//     sorts as the zero time and is never advantaged.
//  2. Single walk keeping seen-sets of canonical URLs and canonical titles;
//     a record whose canonical URL or canonical title was already seen is
//     dropped, otherwise both keys are recorded.
//  3. Survivors get their PriorityScore and the final order is score
//     descending with PublishedAt descending as the tie-break.
//
// The input slice is not modified. Empty input yields empty output.
func Dedupe(items []Article) []Article {
	if len(items) == 0 {
		return nil
	}

	pool := make([]Article, len(items))
	copy(pool, items)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].PublishedAt.After(pool[j].PublishedAt)
	})

	seenURLs := make(map[string]struct{}, len(pool))
	seenTitles := make(map[string]struct{}, len(pool))
	deduped := make([]Article, 0, len(pool))

	for _, item := range pool {
		urlKey := CanonicalURL(item.URL)
		titleKey := CanonicalTitle(item.Title)

		if _, dup := seenURLs[urlKey]; dup {
			logger.Debug("duplicate url, dropping", "title", item.Title)
			continue
		}
		if _, dup := seenTitles[titleKey]; dup {
			logger.Debug("duplicate title, dropping", "title", item.Title)
			continue
		}

		seenURLs[urlKey] = struct{}{}
		seenTitles[titleKey] = struct{}{}

		item.PriorityScore = Score(item.Title)
		deduped = append(deduped, item)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		if deduped[i].PriorityScore != deduped[j].PriorityScore {
			return deduped[i].PriorityScore > deduped[j].PriorityScore
		}
		return deduped[i].PublishedAt.After(deduped[j].PublishedAt)
	})

	metrics.Global.AddDuplicatesFiltered(int64(len(items) - len(deduped)))
	logger.Info("deduplicated articles", "in", len(items), "out", len(deduped))
	return deduped
}
