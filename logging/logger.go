package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Environment variable name for controlling statistics visibility
const ENV_DEV_MODE = "DEV_MODE"

// Statistics represents the collected request statistics
type Statistics struct {
	UniqueVisitors  map[string]time.Time `json:"uniqueVisitors"`  // IP -> Last Visit Time
	ScoringRequests int                  `json:"scoringRequests"` // Total number of scoring requests
	ErrorCount      int                  `json:"errorCount"`      // Number of errors
	PopularSlugs    map[string]int       `json:"popularSlugs"`    // Slug -> Count
	AverageScore    float64              `json:"averageScore"`    // Average SEO score across requests
	TotalScore      float64              `json:"-"`               // Used to calculate average
	ScoredCount     int                  `json:"-"`               // Used to calculate average
	LastPersisted   time.Time            `json:"lastPersisted"`   // Last time stats were saved
	mutex           sync.RWMutex         `json:"-"`
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
			PopularSlugs:   make(map[string]int),
			LastPersisted:  time.Now(),
		}

		// Try to load existing statistics
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

// TrackScoring records a scoring request. The slug may be empty for unsaved
// drafts; only non-empty slugs count towards popularity.
func (s *Statistics) TrackScoring(slug string, score int, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.ScoringRequests++

	if slug != "" {
		s.PopularSlugs[slug]++
	}

	if hasError {
		s.ErrorCount++
		return
	}

	// Update average score across successful requests
	s.TotalScore += float64(score)
	s.ScoredCount++
	s.AverageScore = s.TotalScore / float64(s.ScoredCount)
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)

	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}

	return count
}

// GetPopularSlugs returns the top N most scored post slugs
func (s *Statistics) GetPopularSlugs(n int) map[string]int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make(map[string]int)
	count := 0

	// Simple implementation - for production, use a heap or sorted data structure
	for slug, freq := range s.PopularSlugs {
		if count < n {
			result[slug] = freq
			count++
		}
	}

	return result
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.ScoringRequests == 0 {
		return 0
	}

	return (float64(s.ErrorCount) / float64(s.ScoringRequests)) * 100
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

// GetStatistics returns a copy of the current statistics, but only in development mode
func (s *Statistics) GetStatistics() map[string]interface{} {
	// Check if we're in development mode
	if os.Getenv(ENV_DEV_MODE) != "true" {
		// In production, return limited statistics without sensitive data
		return map[string]interface{}{
			"uniqueVisitors24h": s.GetUniqueVisitorsCount(),
			"totalRequests":     s.requestCount(),
			"errorRate":         s.GetErrorRate(),
			"averageScore":      s.averageScoreSnapshot(),
		}
	}

	// In development mode, return full statistics
	return map[string]interface{}{
		"uniqueVisitors24h": s.GetUniqueVisitorsCount(),
		"totalRequests":     s.requestCount(),
		"errorRate":         s.GetErrorRate(),
		"averageScore":      s.averageScoreSnapshot(),
		"popularSlugs":      s.GetPopularSlugs(5), // Top 5 slugs only shown in dev mode
	}
}

func (s *Statistics) requestCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.ScoringRequests
}

func (s *Statistics) averageScoreSnapshot() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.AverageScore
}
