package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStorage(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "stats-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	storage, err := NewStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	t.Run("RecordEvents", func(t *testing.T) {
		storage.RecordPageAnalysis()
		storage.RecordVisibilityCheck(false)
		storage.RecordVisibilityCheck(true)
		storage.RecordPlatformErrors(3)
		storage.RecordCacheHit()
		storage.RecordCacheMiss()

		stats := storage.GetCurrentStats()
		if stats.PageAnalyses != 1 {
			t.Errorf("Expected 1 page analysis, got %d", stats.PageAnalyses)
		}
		if stats.VisibilityChecks != 2 {
			t.Errorf("Expected 2 visibility checks, got %d", stats.VisibilityChecks)
		}
		if stats.EstimateFallbacks != 1 {
			t.Errorf("Expected 1 estimate fallback, got %d", stats.EstimateFallbacks)
		}
		if stats.PlatformErrors != 3 {
			t.Errorf("Expected 3 platform errors, got %d", stats.PlatformErrors)
		}
		if stats.ReportCacheHits != 1 || stats.ReportCacheMisses != 1 {
			t.Errorf("Expected 1 hit and 1 miss, got %d/%d", stats.ReportCacheHits, stats.ReportCacheMisses)
		}
	})

	t.Run("Persistence", func(t *testing.T) {
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond) // Give time for the write to complete

		storage2, err := NewStorage(tempDir)
		if err != nil {
			t.Fatalf("Failed to create second storage: %v", err)
		}

		stats := storage2.GetCurrentStats()
		if stats.PageAnalyses != 1 {
			t.Errorf("Expected 1 page analysis after reload, got %d", stats.PageAnalyses)
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		oldMonth := time.Now().AddDate(0, -2, 0).Format("2006-01")
		storage.stats[oldMonth] = &MonthlyStats{
			PageAnalyses: 100,
			LastUpdated:  time.Now().AddDate(0, -2, 0),
		}

		storage.Cleanup()

		if _, exists := storage.stats[oldMonth]; exists {
			t.Error("Old stats should have been cleaned up")
		}
	})

	t.Run("FileSize", func(t *testing.T) {
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond)

		info, err := os.Stat(filepath.Join(tempDir, "stats.json"))
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}

		// File should be relatively small (< 1KB for this test data)
		if info.Size() > 1024 {
			t.Errorf("File size too large: %d bytes", info.Size())
		}
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		done := make(chan bool)
		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					storage.RecordPageAnalysis()
					storage.GetCurrentStats()
				}
				done <- true
			}()
		}

		for i := 0; i < 10; i++ {
			<-done
		}

		stats := storage.GetCurrentStats()
		// 1 from RecordEvents + 10 goroutines * 100 iterations
		if stats.PageAnalyses != 1001 {
			t.Errorf("Expected 1001 page analyses, got %d", stats.PageAnalyses)
		}
	})
}
