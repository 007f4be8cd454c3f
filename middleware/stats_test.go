package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/contentforge/backend/logging"
)

func TestPeriodicSaver(t *testing.T) {
	saver := &periodicSaver{interval: 100}

	if saver.due(0) {
		t.Error("Expected no save before any scoring requests")
	}
	if saver.due(50) {
		t.Error("Expected no save off the interval")
	}
	if !saver.due(100) {
		t.Error("Expected a save when the counter reaches the interval")
	}

	// The counter only moves on scoring calls; intervening requests that see
	// the same count must not trigger another save.
	for i := 0; i < 10; i++ {
		if saver.due(100) {
			t.Fatal("Expected no repeat save while the counter has not advanced")
		}
	}

	if !saver.due(200) {
		t.Error("Expected a save once the counter advances to the next interval")
	}
	if saver.due(200) {
		t.Error("Expected no repeat save at the same count")
	}
}

func TestTrackRequestsRecordsVisitors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stats := logging.Initialize()
	before := stats.GetUniqueVisitorsCount()

	r := gin.New()
	r.Use(TrackRequests(stats))
	r.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if got := stats.GetUniqueVisitorsCount(); got != before+1 {
		t.Errorf("Expected %d unique visitors, got %d", before+1, got)
	}
}
