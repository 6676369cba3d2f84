package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ai-visibility/backend/utils"
)

// Environment variable name for controlling statistics visibility
const ENV_DEV_MODE = "DEV_MODE"

// Statistics represents the collected request statistics
type Statistics struct {
	UniqueVisitors map[string]time.Time `json:"uniqueVisitors"` // IP -> Last Visit Time
	ScanRequests   int                  `json:"scanRequests"`   // Total number of scan requests
	ErrorCount     int                  `json:"errorCount"`     // Number of errors
	PopularDomains map[string]int       `json:"popularDomains"` // Domain -> Count
	AverageLatency float64              `json:"averageLatency"` // Average handler latency in milliseconds
	TotalLatency   float64              `json:"-"`              // Used to calculate average
	RequestCount   int                  `json:"-"`              // Used to calculate average
	LastPersisted  time.Time            `json:"lastPersisted"`  // Last time stats were saved
	mutex          sync.RWMutex         `json:"-"`
}

var (
	stats *Statistics
	once  sync.Once
)

// Initialize creates or loads the statistics
func Initialize() *Statistics {
	once.Do(func() {
		stats = &Statistics{
			UniqueVisitors: make(map[string]time.Time),
			PopularDomains: make(map[string]int),
			LastPersisted:  time.Now(),
		}

		if err := stats.Load(); err != nil {
			fmt.Printf("Could not load existing statistics: %v\n", err)
		}
	})
	return stats
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// cleanDomain normalizes a scanned domain and drops local/test targets.
func cleanDomain(domain string) string {
	d := utils.NormalizeDomain(domain)
	if d == "" || strings.Contains(d, "localhost") || strings.HasPrefix(d, "127.") {
		return ""
	}
	return d
}

// TrackScan records a scan request
func (s *Statistics) TrackScan(domain string, latencyMS float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.ScanRequests++

	if cleaned := cleanDomain(domain); cleaned != "" {
		s.PopularDomains[cleaned]++
	}

	if hasError {
		s.ErrorCount++
	}

	s.TotalLatency += latencyMS
	s.RequestCount++
	s.AverageLatency = s.TotalLatency / float64(s.RequestCount)
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.uniqueVisitorsCountLocked()
}

// uniqueVisitorsCountLocked requires the caller to hold the mutex.
func (s *Statistics) uniqueVisitorsCountLocked() int {
	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)

	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}

	return count
}

// GetPopularDomains returns up to n of the most scanned domains
func (s *Statistics) GetPopularDomains(n int) map[string]int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.popularDomainsLocked(n)
}

// popularDomainsLocked requires the caller to hold the mutex.
func (s *Statistics) popularDomainsLocked(n int) map[string]int {
	result := make(map[string]int)
	count := 0

	// Simple implementation - for production, use a heap or sorted data structure
	for domain, freq := range s.PopularDomains {
		if count < n {
			result[domain] = freq
			count++
		}
	}

	return result
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.errorRateLocked()
}

// errorRateLocked requires the caller to hold the mutex.
func (s *Statistics) errorRateLocked() float64 {
	if s.ScanRequests == 0 {
		return 0
	}

	return (float64(s.ErrorCount) / float64(s.ScanRequests)) * 100
}

// Save persists the statistics to a file
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LastPersisted = time.Now()

	file, err := os.Create("statistics.json")
	if err != nil {
		return fmt.Errorf("could not create statistics file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("could not encode statistics: %v", err)
	}

	return nil
}

// Load reads the statistics from a file
func (s *Statistics) Load() error {
	file, err := os.Open("statistics.json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not an error if file doesn't exist yet
		}
		return fmt.Errorf("could not open statistics file: %v", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(s); err != nil {
		return fmt.Errorf("could not decode statistics: %v", err)
	}

	return nil
}

// GetStatistics returns a copy of the current statistics; full detail only
// in development mode. The derived values are computed under a single read
// lock: sync.RWMutex read locks must not be re-acquired while held, since a
// writer queued in between blocks the inner acquisition forever.
func (s *Statistics) GetStatistics() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := map[string]interface{}{
		"uniqueVisitors24h": s.uniqueVisitorsCountLocked(),
		"totalRequests":     s.ScanRequests,
		"errorRate":         s.errorRateLocked(),
		"averageLatency":    s.AverageLatency,
	}

	if os.Getenv(ENV_DEV_MODE) == "true" {
		result["popularDomains"] = s.popularDomainsLocked(5) // Top 5 only shown in dev mode
	}

	return result
}
