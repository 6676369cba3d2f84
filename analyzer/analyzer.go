package analyzer

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ai-visibility/backend/models"
	"github.com/ai-visibility/backend/scoring"
	"github.com/ai-visibility/backend/signals"
	"github.com/ai-visibility/backend/stats"
	"github.com/ai-visibility/backend/utils"
	"github.com/ai-visibility/backend/visibility"
)

// ErrCannotAnalyze is returned when the submitted page record carries no
// usable content.
var ErrCannotAnalyze = errors.New("page record is empty or missing required fields")

type cachedReport struct {
	report    *visibility.Report
	timestamp time.Time
}

// Options configures a new Analyzer. Zero values fall back to the
// defaults below.
type Options struct {
	Platforms             []visibility.Platform
	MaxQueriesPerPlatform int
	QueryTimeout          time.Duration
	ReportCacheTTL        time.Duration
	MaxCachedReports      int
	RecommendationLimit   int
	DataDir               string
}

// Analyzer scores pages and runs visibility checks. Visibility reports are
// cached because they fan out to external answer platforms; page scoring is
// pure and recomputed on every call.
type Analyzer struct {
	checker             *visibility.Checker
	recommendationLimit int
	stats               *stats.Storage

	reportCache      map[string]cachedReport
	cacheMutex       sync.RWMutex
	cacheTTL         time.Duration
	maxCachedReports int
	lastCleanup      time.Time
	cleanupInterval  time.Duration
}

// New creates an Analyzer with event counters persisted under dataDir.
func New(opts Options) (*Analyzer, error) {
	if opts.RecommendationLimit <= 0 {
		opts.RecommendationLimit = 10
	}
	if opts.ReportCacheTTL <= 0 {
		opts.ReportCacheTTL = 30 * time.Minute
	}
	if opts.MaxCachedReports <= 0 {
		opts.MaxCachedReports = 1000
	}
	if opts.DataDir == "" {
		opts.DataDir = "./data"
	}

	storage, err := stats.NewStorage(opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stats storage: %w", err)
	}

	a := &Analyzer{
		checker: &visibility.Checker{
			Platforms:             opts.Platforms,
			MaxQueriesPerPlatform: opts.MaxQueriesPerPlatform,
			QueryTimeout:          opts.QueryTimeout,
		},
		recommendationLimit: opts.RecommendationLimit,
		stats:               storage,
		reportCache:         make(map[string]cachedReport),
		cacheTTL:            opts.ReportCacheTTL,
		maxCachedReports:    opts.MaxCachedReports,
		lastCleanup:         time.Now(),
		cleanupInterval:     10 * time.Minute,
	}
	return a, nil
}

// AnalyzePage extracts signals from the page and scores it against both
// rulebooks. The result is deterministic for a given page record.
func (a *Analyzer) AnalyzePage(page *models.PageRecord) (*PageReport, error) {
	if page == nil || page.IsEmpty() {
		return nil, ErrCannotAnalyze
	}

	sig := signals.Extract(page)
	conventional := scoring.ScoreConventional(sig)
	answerEngine := scoring.ScoreAnswerEngine(sig)

	all := make([]scoring.Category, 0, len(conventional)+len(answerEngine))
	all = append(all, conventional...)
	all = append(all, answerEngine...)

	report := &PageReport{
		URL:                    page.URL,
		ConventionalScore:      scoring.Overall(conventional),
		AnswerEngineScore:      scoring.Overall(answerEngine),
		ConventionalBreakdown:  scoring.Breakdown(conventional),
		AnswerEngineBreakdown:  scoring.Breakdown(answerEngine),
		ConventionalCategories: conventional,
		AnswerEngineCategories: answerEngine,
		Recommendations:        scoring.TopRecommendations(all, a.recommendationLimit),
	}

	a.stats.RecordPageAnalysis()
	return report, nil
}

// AnalyzeVisibility runs synthesized queries against the configured answer
// platforms and folds the detections into a composite score. When no
// platform produces a checked result the report falls back to an estimate
// derived from the page's answer-engine categories.
func (a *Analyzer) AnalyzeVisibility(ctx context.Context, domain string, page *models.PageRecord) (*visibility.Report, error) {
	if domain == "" || page == nil || page.IsEmpty() {
		return nil, ErrCannotAnalyze
	}

	a.maybeCleanupCache()

	key := reportCacheKey(domain)
	if cached, ok := a.getCachedReport(key); ok {
		a.stats.RecordCacheHit()
		return cached, nil
	}
	a.stats.RecordCacheMiss()

	report := a.buildReport(ctx, domain, page)

	a.stats.RecordVisibilityCheck(report.IsEstimate)
	a.storeCachedReport(key, report)
	return report, nil
}

func (a *Analyzer) buildReport(ctx context.Context, domain string, page *models.PageRecord) *visibility.Report {
	answerEngine := scoring.ScoreAnswerEngine(signals.Extract(page))

	if len(a.checker.Platforms) == 0 {
		return visibility.Estimate(domain, answerEngine)
	}

	queries := visibility.SynthesizeQueries(page)
	results := a.checker.Check(ctx, domain, queries)

	unchecked := 0
	for _, r := range results {
		if !r.Checked {
			unchecked++
		}
	}
	if unchecked > 0 {
		a.stats.RecordPlatformErrors(unchecked)
	}

	breakdown, _, err := visibility.Score(results)
	if err != nil {
		// Every query failed; keep the unchecked results for the caller
		// but score from on-page signals instead.
		report := visibility.Estimate(domain, answerEngine)
		report.Results = results
		return report
	}

	platformScores := visibility.PlatformScores(results)
	return &visibility.Report{
		Domain:         utils.NormalizeDomain(domain),
		Results:        results,
		PlatformScores: platformScores,
		Overall:        visibility.OverallScore(platformScores),
		Breakdown:      breakdown,
		Competitors:    visibility.CompetitorSet(results),
		Explanation:    visibility.Explain(domain, results),
	}
}

// GetStats returns the current month's engine event counters.
func (a *Analyzer) GetStats() stats.MonthlyStats {
	return a.stats.GetCurrentStats()
}

// GetMonthlyStats returns the counters recorded for one YYYY-MM month.
func (a *Analyzer) GetMonthlyStats(yearMonth string) (stats.MonthlyStats, bool) {
	return a.stats.GetMonthlyStats(yearMonth)
}

// GetStatsMonths lists the months with recorded counters, newest first.
func (a *Analyzer) GetStatsMonths() []string {
	return a.stats.GetAllMonths()
}

// Shutdown flushes persisted state and closes any platform clients that
// hold connections.
func (a *Analyzer) Shutdown() {
	a.stats.Shutdown()
	for _, p := range a.checker.Platforms {
		if closer, ok := p.(io.Closer); ok {
			closer.Close()
		}
	}
}

func reportCacheKey(domain string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(utils.NormalizeDomain(domain))))
}

func (a *Analyzer) getCachedReport(key string) (*visibility.Report, bool) {
	a.cacheMutex.RLock()
	defer a.cacheMutex.RUnlock()

	entry, ok := a.reportCache[key]
	if !ok || time.Since(entry.timestamp) > a.cacheTTL {
		return nil, false
	}
	return entry.report, true
}

func (a *Analyzer) storeCachedReport(key string, report *visibility.Report) {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()

	// Drop the stalest entry rather than growing without bound.
	if len(a.reportCache) >= a.maxCachedReports {
		var oldestKey string
		var oldest time.Time
		for k, v := range a.reportCache {
			if oldestKey == "" || v.timestamp.Before(oldest) {
				oldestKey = k
				oldest = v.timestamp
			}
		}
		delete(a.reportCache, oldestKey)
	}

	a.reportCache[key] = cachedReport{report: report, timestamp: time.Now()}
}

func (a *Analyzer) maybeCleanupCache() {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()

	if time.Since(a.lastCleanup) < a.cleanupInterval {
		return
	}
	a.lastCleanup = time.Now()

	for key, entry := range a.reportCache {
		if time.Since(entry.timestamp) > a.cacheTTL {
			delete(a.reportCache, key)
		}
	}
}

// ClearReportCache empties the visibility report cache.
func (a *Analyzer) ClearReportCache() {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.reportCache = make(map[string]cachedReport)
}

// SetReportCacheTTL adjusts how long visibility reports stay valid.
func (a *Analyzer) SetReportCacheTTL(ttl time.Duration) {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cacheTTL = ttl
}
