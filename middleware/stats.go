package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/contentforge/backend/logging"
)

// periodicSaver decides when the statistics snapshot should be persisted.
// The request counter only advances on scoring calls, so it remembers the
// last count it saved at instead of re-saving while the counter sits on a
// multiple of the interval.
type periodicSaver struct {
	mu        sync.Mutex
	interval  int
	lastSaved int
}

func (p *periodicSaver) due(total int) bool {
	if total == 0 || total%p.interval != 0 {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if total == p.lastSaved {
		return false
	}
	p.lastSaved = total
	return true
}

// TrackRequests records each visitor and periodically persists the
// statistics snapshot. Per-endpoint score tracking happens in the handlers,
// which know the outcome of a scoring call.
func TrackRequests(stats *logging.Statistics) gin.HandlerFunc {
	saver := &periodicSaver{interval: 100}

	return func(c *gin.Context) {
		stats.TrackVisitor(c.ClientIP())

		c.Next()

		// Save statistics every 100 scoring requests
		if total, ok := stats.GetStatistics()["totalRequests"].(int); ok && saver.due(total) {
			go stats.Save() // Save asynchronously to not block the request
		}
	}
}
