package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStorage(t *testing.T) {
	// Create temporary directory for test
	tempDir, err := os.MkdirTemp("", "stats-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Create new storage
	storage, err := NewStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	// Test recording usage
	t.Run("RecordUsage", func(t *testing.T) {
		storage.RecordScore(80)
		storage.RecordScore(60)
		storage.RecordValidationFailure()
		storage.RecordSuggestionRequest()
		storage.RecordAutoGenerate()
		stats := storage.GetCurrentStats()

		if stats.ScoresComputed != 2 {
			t.Errorf("Expected 2 scores computed, got %d", stats.ScoresComputed)
		}
		if stats.ScoreSum != 140 {
			t.Errorf("Expected score sum 140, got %d", stats.ScoreSum)
		}
		if got := stats.AverageScore(); got != 70 {
			t.Errorf("Expected average score 70, got %v", got)
		}
		if stats.ValidationFailures != 1 {
			t.Errorf("Expected 1 validation failure, got %d", stats.ValidationFailures)
		}
		if stats.SuggestionRequests != 1 {
			t.Errorf("Expected 1 suggestion request, got %d", stats.SuggestionRequests)
		}
		if stats.AutoGenerateRequests != 1 {
			t.Errorf("Expected 1 auto-generate request, got %d", stats.AutoGenerateRequests)
		}
	})

	// Test persistence
	t.Run("Persistence", func(t *testing.T) {
		// Force a save
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond) // Give time for the write to complete

		// Create new storage instance pointing to same directory
		storage2, err := NewStorage(tempDir)
		if err != nil {
			t.Fatalf("Failed to create second storage: %v", err)
		}

		stats := storage2.GetCurrentStats()
		if stats.ScoresComputed != 2 {
			t.Errorf("Expected 2 scores computed after reload, got %d", stats.ScoresComputed)
		}
	})

	// Test cleanup
	t.Run("Cleanup", func(t *testing.T) {
		// Add some old stats
		oldMonth := time.Now().AddDate(0, -2, 0).Format("2006-01")
		storage.stats[oldMonth] = &MonthlyStats{
			ScoresComputed: 100,
			LastUpdated:    time.Now().AddDate(0, -2, 0),
		}

		storage.Cleanup()

		// Verify old stats are gone
		if _, exists := storage.stats[oldMonth]; exists {
			t.Error("Old stats should have been cleaned up")
		}
	})

	// Test file size
	t.Run("FileSize", func(t *testing.T) {
		// Force a save
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond) // Give time for the write to complete

		// Check file size
		info, err := os.Stat(filepath.Join(tempDir, "stats.json"))
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}

		// File should be relatively small (< 1KB for this test data)
		if info.Size() > 1024 {
			t.Errorf("File size too large: %d bytes", info.Size())
		}
	})

	// Test concurrent access
	t.Run("ConcurrentAccess", func(t *testing.T) {
		before := storage.GetCurrentStats().ScoresComputed

		done := make(chan bool)
		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					storage.RecordScore(50)
					storage.GetCurrentStats()
				}
				done <- true
			}()
		}

		// Wait for all goroutines to complete
		for i := 0; i < 10; i++ {
			<-done
		}

		// Verify final counts
		stats := storage.GetCurrentStats()
		expectedCount := before + 1000 // 10 goroutines * 100 iterations
		if stats.ScoresComputed != expectedCount {
			t.Errorf("Expected %d scores computed, got %d", expectedCount, stats.ScoresComputed)
		}
	})
}
