package logging

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newStatistics() *Statistics {
	return &Statistics{
		UniqueVisitors: make(map[string]time.Time),
		PopularDomains: make(map[string]int),
	}
}

func TestTrackScan(t *testing.T) {
	s := newStatistics()

	s.TrackScan("https://www.example.com/page", 100, false)
	s.TrackScan("example.com", 300, true)
	s.TrackScan("localhost:8082", 50, false)

	if s.ScanRequests != 3 {
		t.Errorf("ScanRequests = %d, want 3", s.ScanRequests)
	}
	if s.PopularDomains["example.com"] != 2 {
		t.Errorf("example.com count = %d, want 2 (normalized)", s.PopularDomains["example.com"])
	}
	if _, ok := s.PopularDomains["localhost"]; ok {
		t.Error("local targets must not be counted as popular domains")
	}
	if got := s.GetErrorRate(); got != 100.0/3.0 {
		t.Errorf("error rate = %v, want one error in three scans", got)
	}
	if got := s.AverageLatency; got != 150 {
		t.Errorf("average latency = %v, want 150", got)
	}
}

func TestGetStatisticsFields(t *testing.T) {
	s := newStatistics()
	s.TrackVisitor("10.0.0.1")
	s.TrackScan("example.com", 80, false)

	got := s.GetStatistics()
	if got["uniqueVisitors24h"].(int) != 1 {
		t.Errorf("uniqueVisitors24h = %v, want 1", got["uniqueVisitors24h"])
	}
	if got["totalRequests"].(int) != 1 {
		t.Errorf("totalRequests = %v, want 1", got["totalRequests"])
	}
}

// Readers of the aggregate snapshot must make progress while writers are
// queued; every request goes through both paths in the stats middleware.
func TestGetStatisticsUnderWriteLoad(t *testing.T) {
	s := newStatistics()

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func(n int) {
				defer wg.Done()
				for j := 0; j < 200; j++ {
					s.TrackVisitor(fmt.Sprintf("10.0.%d.%d", n, j%250))
					s.TrackScan("example.com", 12, j%10 == 0)
				}
			}(i)
			go func() {
				defer wg.Done()
				for j := 0; j < 200; j++ {
					s.GetStatistics()
					s.GetUniqueVisitorsCount()
					s.GetErrorRate()
				}
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(15 * time.Second):
		t.Fatal("statistics readers and writers wedged under concurrent load")
	}

	if s.ScanRequests != 20*200 {
		t.Errorf("ScanRequests = %d, want %d", s.ScanRequests, 20*200)
	}
}
