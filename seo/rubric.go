package seo

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rubric factor names, in report order.
const (
	FactorTitle           = "title"
	FactorMetaDescription = "metaDescription"
	FactorPrimaryKeyword  = "primaryKeyword"
	FactorContentLength   = "contentLength"
	FactorHeadings        = "headings"
	FactorImages          = "images"
	FactorKeywordDensity  = "keywordDensity"
	FactorSlug            = "urlSlug"
	FactorExcerpt         = "excerpt"
	FactorSocialTags      = "socialTags"
)

// slugPattern accepts lowercase ASCII letters, digits and hyphens; no leading
// or trailing hyphen. Interior hyphen runs are allowed.
var slugPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ScoreRubric applies the fixed weighted rubric to a post and its derived
// metrics. The factor weights sum to 100, so the breakdown total is the
// composite 0-100 score. Missing optional fields zero or halve their factor;
// they never produce an error. The thresholds below are a published contract
// ("score >= 70 is publishable") and must not drift.
func ScoreRubric(post PostContent, plainText string, metrics SEOMetrics) ScoreBreakdown {
	keyword := strings.TrimSpace(post.PrimaryKeyword)

	return ScoreBreakdown{
		{FactorTitle, scoreMetaText(post.Title, keyword, 30, 60), 10},
		{FactorMetaDescription, scoreMetaText(post.MetaDescription, keyword, 120, 155), 10},
		{FactorPrimaryKeyword, scoreKeywordPresence(plainText, keyword), 15},
		{FactorContentLength, scoreContentLength(metrics.WordCount), 15},
		{FactorHeadings, scoreHeadings(metrics.HeadingCount), 10},
		{FactorImages, scoreImages(post.FeaturedImage), 10},
		{FactorKeywordDensity, scoreKeywordDensity(metrics.KeywordDensityPercent), 10},
		{FactorSlug, scoreSlug(post.Slug), 5},
		{FactorExcerpt, scoreExcerpt(post.Excerpt), 5},
		{FactorSocialTags, scoreSocialTags(post), 10},
	}
}

// scoreMetaText grades the title and meta-description factors, which share a
// shape: full credit when the length is inside [min,max] AND the text contains
// the keyword, half credit when exactly one condition holds.
func scoreMetaText(text, keyword string, minLen, maxLen int) int {
	if text == "" {
		return 0
	}
	length := utf8.RuneCountInString(text)
	lengthOK := length >= minLen && length <= maxLen
	keywordOK := keyword != "" && containsFold(text, keyword)

	switch {
	case lengthOK && keywordOK:
		return 10
	case lengthOK || keywordOK:
		return 5
	default:
		return 0
	}
}

func scoreKeywordPresence(plainText, keyword string) int {
	if keyword != "" && containsFold(plainText, keyword) {
		return 15
	}
	return 0
}

func scoreContentLength(wordCount int) int {
	switch {
	case wordCount >= 1000:
		return 15
	case wordCount >= 500:
		return 10
	case wordCount >= 300:
		return 5
	default:
		return 0
	}
}

// scoreHeadings is proportional below three headings: floor(count * 10/3),
// capped at the factor maximum. Three headings already earn the full 10.
func scoreHeadings(headingCount int) int {
	points := headingCount * 10 / 3
	if points > 10 {
		return 10
	}
	return points
}

func scoreImages(featured PostImage) int {
	if featured.URL == "" {
		return 0
	}
	if featured.AltText == "" {
		return 5
	}
	return 10
}

// scoreKeywordDensity gives full credit in the optimal [1.0, 2.5] band, half
// credit just outside it up to 4.0, and nothing for zero density or stuffing.
func scoreKeywordDensity(density float64) int {
	switch {
	case density >= 1.0 && density <= 2.5:
		return 10
	case density > 0 && density < 1.0:
		return 5
	case density > 2.5 && density <= 4.0:
		return 5
	default:
		return 0
	}
}

func scoreSlug(slug string) int {
	if len(slug) <= 75 && slugPattern.MatchString(slug) {
		return 5
	}
	return 0
}

func scoreExcerpt(excerpt string) int {
	if strings.TrimSpace(excerpt) != "" {
		return 5
	}
	return 0
}

// scoreSocialTags checks the Open Graph and Twitter Card families
// independently: full credit needs at least one field set in each.
func scoreSocialTags(post PostContent) int {
	og := post.OGTitle != "" || post.OGDescription != "" || post.OGImage != ""
	twitter := post.TwitterTitle != "" || post.TwitterDescription != "" || post.TwitterImage != ""

	switch {
	case og && twitter:
		return 10
	case og || twitter:
		return 5
	default:
		return 0
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
