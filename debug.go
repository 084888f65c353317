package sheaf

import "time"

// debugStats holds per-flush timing and draw-call metrics.
// Only populated when BatchConfig.Debug is true.
type debugStats struct {
	sortTime     time.Duration
	buildTime    time.Duration
	submitTime   time.Duration
	requestCount int
	groupCount   int
	skipCount    int
	vertexCount  int
}

// logFlushStats writes timing and draw-call stats at debug level.
func logFlushStats(stats debugStats) {
	total := stats.sortTime + stats.buildTime + stats.submitTime
	logger.Debug("sheaf: flush",
		"sort", stats.sortTime,
		"build", stats.buildTime,
		"submit", stats.submitTime,
		"total", total,
		"requests", stats.requestCount,
		"groups", stats.groupCount,
		"skipped", stats.skipCount,
		"vertices", stats.vertexCount,
	)
}
