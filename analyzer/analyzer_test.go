package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ai-visibility/backend/models"
	"github.com/ai-visibility/backend/visibility"
)

type stubPlatform struct {
	id    string
	text  string
	cites []visibility.Citation
	err   error
	calls int
}

func (s *stubPlatform) ID() string { return s.id }

func (s *stubPlatform) Ask(ctx context.Context, query string) (*visibility.Answer, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &visibility.Answer{
		Platform:  s.id,
		Query:     query,
		Text:      s.text,
		Citations: s.cites,
	}, nil
}

func richPage() *models.PageRecord {
	body := strings.Repeat("Static analysis catches real defects early. ", 250)
	return &models.PageRecord{
		URL:             "https://example.com/guide/static-analysis",
		Title:           "Static Analysis Tools Compared for Modern Teams",
		MetaDescription: "A practical comparison of static analysis tools, covering setup cost, signal quality and CI integration for teams of any size.",
		H1:              []string{"Static Analysis Tools Compared"},
		H2:              []string{"What is static analysis?", "How do linters differ?", "Choosing a tool"},
		WordCount:       1750,
		TextContent:     body,
		LoadTimeMS:      420,
		ByteSize:        180 * 1024,
		SchemaTypes:     []string{"Article", "FAQPage"},
	}
}

func newTestAnalyzer(t *testing.T, platforms ...visibility.Platform) *Analyzer {
	t.Helper()
	a, err := New(Options{
		Platforms: platforms,
		DataDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(a.Shutdown)
	return a
}

func TestAnalyzePage(t *testing.T) {
	a := newTestAnalyzer(t)

	t.Run("EmptyPage", func(t *testing.T) {
		if _, err := a.AnalyzePage(&models.PageRecord{}); !errors.Is(err, ErrCannotAnalyze) {
			t.Errorf("expected ErrCannotAnalyze, got %v", err)
		}
		if _, err := a.AnalyzePage(nil); !errors.Is(err, ErrCannotAnalyze) {
			t.Errorf("expected ErrCannotAnalyze for nil page, got %v", err)
		}
	})

	t.Run("ScoresInRange", func(t *testing.T) {
		report, err := a.AnalyzePage(richPage())
		if err != nil {
			t.Fatalf("AnalyzePage failed: %v", err)
		}
		if report.ConventionalScore < 0 || report.ConventionalScore > 100 {
			t.Errorf("conventional score out of range: %d", report.ConventionalScore)
		}
		if report.AnswerEngineScore < 0 || report.AnswerEngineScore > 100 {
			t.Errorf("answer engine score out of range: %d", report.AnswerEngineScore)
		}
		if len(report.ConventionalCategories) != 5 || len(report.AnswerEngineCategories) != 5 {
			t.Errorf("expected 5 categories per rulebook, got %d and %d",
				len(report.ConventionalCategories), len(report.AnswerEngineCategories))
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		page := richPage()
		first, err := a.AnalyzePage(page)
		if err != nil {
			t.Fatalf("AnalyzePage failed: %v", err)
		}
		second, err := a.AnalyzePage(page)
		if err != nil {
			t.Fatalf("AnalyzePage failed: %v", err)
		}
		if first.ConventionalScore != second.ConventionalScore ||
			first.AnswerEngineScore != second.AnswerEngineScore {
			t.Errorf("repeated analysis diverged: %d/%d vs %d/%d",
				first.ConventionalScore, first.AnswerEngineScore,
				second.ConventionalScore, second.AnswerEngineScore)
		}
	})
}

func TestAnalyzeVisibilityMeasured(t *testing.T) {
	platform := &stubPlatform{
		id:   "gemini",
		text: "For static analysis, example.com is the most thorough option available.",
		cites: []visibility.Citation{
			{URL: "https://example.com/guide/static-analysis", Domain: "example.com"},
		},
	}
	a := newTestAnalyzer(t, platform)

	report, err := a.AnalyzeVisibility(context.Background(), "example.com", richPage())
	if err != nil {
		t.Fatalf("AnalyzeVisibility failed: %v", err)
	}

	if report.IsEstimate {
		t.Error("measured report should not be tagged as an estimate")
	}
	if report.Overall <= 0 {
		t.Errorf("cited domain should score above zero, got %d", report.Overall)
	}
	if report.Breakdown.CitationPresence != 40 {
		t.Errorf("every answer cites the domain, expected full citation factor, got %v",
			report.Breakdown.CitationPresence)
	}
	if _, ok := report.PlatformScores["gemini"]; !ok {
		t.Error("expected a per-platform score for gemini")
	}
	if platform.calls == 0 {
		t.Error("platform was never queried")
	}
}

func TestAnalyzeVisibilityEstimateFallback(t *testing.T) {
	t.Run("NoPlatformsConfigured", func(t *testing.T) {
		a := newTestAnalyzer(t)
		report, err := a.AnalyzeVisibility(context.Background(), "example.com", richPage())
		if err != nil {
			t.Fatalf("AnalyzeVisibility failed: %v", err)
		}
		if !report.IsEstimate {
			t.Error("report without platforms must be an estimate")
		}
	})

	t.Run("AllQueriesFail", func(t *testing.T) {
		broken := &stubPlatform{id: "chatgpt", err: errors.New("upstream timeout")}
		a := newTestAnalyzer(t, broken)

		report, err := a.AnalyzeVisibility(context.Background(), "example.com", richPage())
		if err != nil {
			t.Fatalf("AnalyzeVisibility failed: %v", err)
		}
		if !report.IsEstimate {
			t.Error("all-failed check must fall back to an estimate")
		}
		if len(report.Results) == 0 {
			t.Error("failed results should still be reported as unchecked")
		}
		for _, r := range report.Results {
			if r.Checked {
				t.Errorf("query %q on %s marked checked despite platform error", r.Query, r.Platform)
			}
		}
	})
}

func TestAnalyzeVisibilityCaching(t *testing.T) {
	platform := &stubPlatform{
		id:   "gemini",
		text: "example.com covers this in depth.",
	}
	a := newTestAnalyzer(t, platform)
	ctx := context.Background()

	if _, err := a.AnalyzeVisibility(ctx, "example.com", richPage()); err != nil {
		t.Fatalf("first check failed: %v", err)
	}
	callsAfterFirst := platform.calls
	if callsAfterFirst == 0 {
		t.Fatal("platform was never queried on the first check")
	}

	if _, err := a.AnalyzeVisibility(ctx, "https://www.example.com/", richPage()); err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	if platform.calls != callsAfterFirst {
		t.Errorf("cached domain should not trigger new platform calls: %d -> %d",
			callsAfterFirst, platform.calls)
	}

	a.ClearReportCache()
	if _, err := a.AnalyzeVisibility(ctx, "example.com", richPage()); err != nil {
		t.Fatalf("post-clear check failed: %v", err)
	}
	if platform.calls == callsAfterFirst {
		t.Error("cleared cache should force a fresh platform check")
	}
}

func TestEngineStatsByMonth(t *testing.T) {
	a := newTestAnalyzer(t)

	if _, err := a.AnalyzePage(richPage()); err != nil {
		t.Fatalf("AnalyzePage failed: %v", err)
	}

	months := a.GetStatsMonths()
	if len(months) != 1 {
		t.Fatalf("GetStatsMonths = %v, want the current month only", months)
	}

	monthly, ok := a.GetMonthlyStats(months[0])
	if !ok {
		t.Fatalf("no counters recorded for %s", months[0])
	}
	if monthly.PageAnalyses != 1 {
		t.Errorf("PageAnalyses = %d, want 1", monthly.PageAnalyses)
	}

	if _, ok := a.GetMonthlyStats("1999-01"); ok {
		t.Error("unrecorded month reported as present")
	}
}

func TestAnalyzeVisibilityRejectsBadInput(t *testing.T) {
	a := newTestAnalyzer(t)

	if _, err := a.AnalyzeVisibility(context.Background(), "", richPage()); !errors.Is(err, ErrCannotAnalyze) {
		t.Errorf("expected ErrCannotAnalyze for empty domain, got %v", err)
	}
	if _, err := a.AnalyzeVisibility(context.Background(), "example.com", nil); !errors.Is(err, ErrCannotAnalyze) {
		t.Errorf("expected ErrCannotAnalyze for nil page, got %v", err)
	}
}
