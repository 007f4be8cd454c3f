package seo

import (
	"strings"
	"testing"
)

func TestCalculateMetrics(t *testing.T) {
	t.Run("EmptyContent", func(t *testing.T) {
		m := CalculateMetrics(ExtractedText{}, "python")
		if m.WordCount != 0 {
			t.Errorf("Expected 0 words, got %d", m.WordCount)
		}
		if m.ReadingTimeMinutes != 0 {
			t.Errorf("Expected 0 minutes for empty content, got %d", m.ReadingTimeMinutes)
		}
		if m.KeywordDensityPercent != 0 {
			t.Errorf("Expected 0 density for empty content, got %v", m.KeywordDensityPercent)
		}
	})

	t.Run("EmptyKeyword", func(t *testing.T) {
		m := CalculateMetrics(ExtractedText{PlainText: "some words here"}, "")
		if m.KeywordDensityPercent != 0 {
			t.Errorf("Expected 0 density for empty keyword, got %v", m.KeywordDensityPercent)
		}
		if m.WordCount != 3 {
			t.Errorf("Expected 3 words, got %d", m.WordCount)
		}
	})

	t.Run("ReadingTimeRoundsUp", func(t *testing.T) {
		cases := []struct {
			words   int
			minutes int
		}{
			{1, 1},
			{199, 1},
			{200, 1},
			{201, 2},
			{1000, 5},
		}
		for _, tc := range cases {
			text := strings.Repeat("word ", tc.words)
			m := CalculateMetrics(ExtractedText{PlainText: text}, "")
			if m.ReadingTimeMinutes != tc.minutes {
				t.Errorf("Expected %d minutes for %d words, got %d", tc.minutes, tc.words, m.ReadingTimeMinutes)
			}
		}
	})

	t.Run("KeywordDensity", func(t *testing.T) {
		// 1000 words with the keyword occurring 15 times -> 1.5%
		words := make([]string, 0, 1000)
		for i := 0; i < 985; i++ {
			words = append(words, "filler")
		}
		for i := 0; i < 15; i++ {
			words = append(words, "Python")
		}
		m := CalculateMetrics(ExtractedText{PlainText: strings.Join(words, " ")}, "python")
		if m.WordCount != 1000 {
			t.Fatalf("Expected 1000 words, got %d", m.WordCount)
		}
		if m.KeywordDensityPercent != 1.5 {
			t.Errorf("Expected density 1.5, got %v", m.KeywordDensityPercent)
		}
	})

	t.Run("DensityIsCaseInsensitiveAndTrimmed", func(t *testing.T) {
		m := CalculateMetrics(ExtractedText{PlainText: "Go is great and GO is fast"}, "  go ")
		// 2 occurrences of "go" in 7 words = 28.571... -> 28.6
		if m.KeywordDensityPercent != 28.6 {
			t.Errorf("Expected density 28.6, got %v", m.KeywordDensityPercent)
		}
	})

	t.Run("HeadingCount", func(t *testing.T) {
		extracted := ExtractedText{
			PlainText: "text",
			Headings:  []Heading{{Level: 1}, {Level: 2}},
		}
		m := CalculateMetrics(extracted, "")
		if m.HeadingCount != 2 {
			t.Errorf("Expected heading count 2, got %d", m.HeadingCount)
		}
	})
}
