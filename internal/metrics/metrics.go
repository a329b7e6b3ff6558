package metrics

import (
	"sync"
	"time"
)

// Metrics collects per-process pipeline counters, exposed by the optional
// monitoring endpoints in main.
type Metrics struct {
	mu sync.RWMutex

	ArticlesFetched    int64
	DuplicatesFiltered int64
	ArticlesEnriched   int64
	ArticlesDropped    int64
	SummariesGenerated int64
	EmailsSent         int64

	LastRunDuration time.Duration
	LastRunTime     time.Time
	LastErrorTime   time.Time
	LastError       string
	IsHealthy       bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddArticlesFetched(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFetched += n
}

func (m *Metrics) AddDuplicatesFiltered(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += n
}

func (m *Metrics) IncrementArticlesEnriched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesEnriched++
}

func (m *Metrics) IncrementArticlesDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesDropped++
}

func (m *Metrics) IncrementSummariesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummariesGenerated++
}

func (m *Metrics) IncrementEmailsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmailsSent++
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_fetched":     m.ArticlesFetched,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"articles_enriched":    m.ArticlesEnriched,
		"articles_dropped":     m.ArticlesDropped,
		"summaries_generated":  m.SummariesGenerated,
		"emails_sent":          m.EmailsSent,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
