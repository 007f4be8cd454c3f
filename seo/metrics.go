package seo

import (
	"math"
	"strings"
)

// wordsPerMinute is the fixed reading speed used for reading-time estimates.
const wordsPerMinute = 200

// CalculateMetrics derives the quantitative measurements for a post from its
// extracted text and declared primary keyword. There are no error paths: an
// empty keyword or an empty body simply yield zero values.
func CalculateMetrics(extracted ExtractedText, primaryKeyword string) SEOMetrics {
	wordCount := len(strings.Fields(extracted.PlainText))
	return SEOMetrics{
		WordCount:             wordCount,
		ReadingTimeMinutes:    readingTime(wordCount),
		KeywordDensityPercent: keywordDensity(extracted.PlainText, primaryKeyword, wordCount),
		HeadingCount:          len(extracted.Headings),
	}
}

// readingTime is ceil(words / wordsPerMinute). Zero words means zero minutes,
// not one, so empty content is not reported as readable.
func readingTime(wordCount int) int {
	if wordCount == 0 {
		return 0
	}
	return (wordCount + wordsPerMinute - 1) / wordsPerMinute
}

// keywordDensity counts case-insensitive, whole-phrase, non-overlapping
// occurrences of the trimmed keyword and returns them as a percentage of the
// word count, rounded to one decimal place.
func keywordDensity(plainText, keyword string, wordCount int) float64 {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || wordCount == 0 {
		return 0
	}
	occurrences := strings.Count(strings.ToLower(plainText), strings.ToLower(keyword))
	density := float64(occurrences) / float64(wordCount) * 100
	return math.Round(density*10) / 10
}
