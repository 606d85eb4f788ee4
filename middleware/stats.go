package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-auditor/backend/logging"
	"github.com/seo-auditor/backend/stats"
)

// endpointMetrics maps audit routes to their monthly counter.
var endpointMetrics = map[string]stats.Metric{
	"/fetch-page":      stats.PageFetches,
	"/analyze-seo":     stats.Analyses,
	"/analyze-seo-url": stats.Analyses,
	"/robots-check":    stats.RobotsChecks,
	"/web-vitals":      stats.VitalsLookups,
	"/schema-audit":    stats.SchemaAudits,
}

// StatsTracker tracks visitors and per-endpoint audit counters for every
// request that hits one of the audit routes.
func StatsTracker(statistics *logging.Statistics, storage *stats.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Track unique visitor by real IP
		statistics.TrackVisitor(c.ClientIP())

		c.Next()

		metric, tracked := endpointMetrics[c.Request.URL.Path]
		if !tracked {
			return
		}

		failed := c.Writer.Status() >= 400
		storage.Increment(metric)
		if failed {
			storage.Increment(stats.Errors)
		}

		loadTime := float64(time.Since(start).Milliseconds())
		statistics.TrackAudit(c.Query("url"), loadTime, failed)

		// Periodically save statistics
		if total := statistics.TotalRequests(); total > 0 && total%100 == 0 {
			go statistics.Save()
		}
	}
}
