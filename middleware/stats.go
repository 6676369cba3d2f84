package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ai-visibility/backend/logging"
)

// ScanDomainKey is where handlers deposit the scanned domain so this
// middleware can attribute the request.
const ScanDomainKey = "scanDomain"

// StatsMiddleware tracks visitors and scan request statistics
func StatsMiddleware(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		stats.TrackVisitor(c.ClientIP())

		c.Next()

		// Only track scan requests
		if c.Request.Method == "POST" && isScanPath(c.Request.URL.Path) {
			latency := float64(time.Since(start).Milliseconds())
			stats.TrackScan(c.GetString(ScanDomainKey), latency, c.Writer.Status() >= 400)
		}

		// Periodically save statistics
		if stats.GetStatistics()["totalRequests"].(int)%100 == 0 {
			go stats.Save() // Save asynchronously to not block the request
		}
	}
}

func isScanPath(path string) bool {
	return strings.HasPrefix(path, "/api/analyze") || strings.HasPrefix(path, "/api/visibility")
}
