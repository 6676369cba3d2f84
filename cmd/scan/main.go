package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ai-visibility/backend/analyzer"
	"github.com/ai-visibility/backend/config"
	"github.com/ai-visibility/backend/models"
	"github.com/ai-visibility/backend/platform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "scan",
	Short: "AI visibility and page optimization scoring from the command line",
	Long: `scan scores crawled page records the same way the HTTP service does:
conventional SEO and answer-engine readiness out of 100 each, plus
AI answer platform visibility checks when API keys are configured.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var scoreCmd = &cobra.Command{
	Use:   "score [page.json]",
	Short: "Score a crawled page record against both rulebooks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := readPage(args[0])
		if err != nil {
			return err
		}

		// Scoring is local, no platform clients needed.
		engine, err := newEngine(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer engine.Shutdown()

		report, err := engine.AnalyzePage(page)
		if err != nil {
			return fmt.Errorf("scoring failed: %w", err)
		}
		return printJSON(report)
	},
}

var visibilityCmd = &cobra.Command{
	Use:   "visibility [domain] [page.json]",
	Short: "Check how AI answer platforms surface a domain",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain := args[0]
		page, err := readPage(args[1])
		if err != nil {
			return err
		}

		estimateOnly, _ := cmd.Flags().GetBool("estimate-only")
		engine, err := newEngine(cmd.Context(), estimateOnly)
		if err != nil {
			return err
		}
		defer engine.Shutdown()

		report, err := engine.AnalyzeVisibility(cmd.Context(), domain, page)
		if err != nil {
			return fmt.Errorf("visibility check failed: %w", err)
		}
		return printJSON(report)
	},
}

func readPage(path string) (*models.PageRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page record: %w", err)
	}
	var page models.PageRecord
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to parse page record: %w", err)
	}
	return &page, nil
}

func newEngine(ctx context.Context, estimateOnly bool) (*analyzer.Analyzer, error) {
	cfg, err := config.Load(os.Getenv("AIVIS_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	opts := analyzer.Options{
		MaxQueriesPerPlatform: cfg.Engine.MaxQueriesPerPlatform,
		QueryTimeout:          cfg.Engine.QueryTimeout,
		ReportCacheTTL:        cfg.Engine.ReportCacheTTL,
		MaxCachedReports:      cfg.Engine.MaxCachedReports,
		RecommendationLimit:   cfg.Engine.RecommendationLimit,
		DataDir:               cfg.Engine.DataDir,
	}
	if !estimateOnly {
		opts.Platforms = platform.Build(ctx, cfg.Platforms)
	}
	return analyzer.New(opts)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	visibilityCmd.Flags().Bool("estimate-only", false, "skip platform calls and estimate from on-page signals")
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(visibilityCmd)
}

func main() {
	// API keys may live in a local .env, same as the server
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
