package seo

import (
	"context"
	"fmt"
)

// PostContent holds every field of a draft post that the scoring engine
// looks at. Callers supply absent optional fields as empty strings or empty
// slices; only Body and PrimaryKeyword are required for a meaningful score.
type PostContent struct {
	Title              string      `json:"title"`
	Slug               string      `json:"slug"`
	Body               string      `json:"body"`
	Excerpt            string      `json:"excerpt"`
	PrimaryKeyword     string      `json:"primaryKeyword"`
	SecondaryKeywords  []string    `json:"secondaryKeywords"`
	MetaTitle          string      `json:"metaTitle"`
	MetaDescription    string      `json:"metaDescription"`
	OGTitle            string      `json:"ogTitle"`
	OGDescription      string      `json:"ogDescription"`
	OGImage            string      `json:"ogImage"`
	TwitterTitle       string      `json:"twitterTitle"`
	TwitterDescription string      `json:"twitterDescription"`
	TwitterImage       string      `json:"twitterImage"`
	CanonicalURL       string      `json:"canonicalUrl"`
	SchemaType         string      `json:"schemaType"`
	FeaturedImage      PostImage   `json:"featuredImage"`
	Images             []PostImage `json:"images"`
}

// PostImage is an image URL with its ALT text.
type PostImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// Heading is a single h1-h3 heading extracted from post markup. AnchorID is
// derived from the heading's position in the document, not its text, so
// repeated extraction of the same body always yields the same anchors.
type Heading struct {
	Level    int    `json:"level"`
	Text     string `json:"text"`
	AnchorID string `json:"anchorId"`
}

// ExtractedText is the markup-free view of a post body.
type ExtractedText struct {
	PlainText string    `json:"plainText"`
	Headings  []Heading `json:"headings"`
}

// SEOMetrics are the quantitative measurements derived from a post.
type SEOMetrics struct {
	WordCount             int     `json:"wordCount"`
	ReadingTimeMinutes    int     `json:"readingTimeMinutes"`
	KeywordDensityPercent float64 `json:"keywordDensityPercent"`
	HeadingCount          int     `json:"headingCount"`
}

// Factor is one independently scored rubric criterion.
type Factor struct {
	Name         string `json:"name"`
	PointsEarned int    `json:"pointsEarned"`
	PointsMax    int    `json:"pointsMax"`
}

// ScoreBreakdown is the ordered per-factor result of a rubric evaluation.
type ScoreBreakdown []Factor

// Total returns the composite score, the sum of points earned across factors.
func (b ScoreBreakdown) Total() int {
	total := 0
	for _, f := range b {
		total += f.PointsEarned
	}
	return total
}

// LinkSuggestion is a published post offered as an internal-link target.
type LinkSuggestion struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// SuggestionBundle groups every generated improvement suggestion for a post.
type SuggestionBundle struct {
	HeadingSuggestions       []string         `json:"headingSuggestions"`
	FAQSuggestions           []string         `json:"faqSuggestions"`
	InternalLinkSuggestions  []LinkSuggestion `json:"internalLinkSuggestions"`
	GeneratedMetaDescription string           `json:"generatedMetaDescription"`
}

// Report is the full output of one scoring call.
type Report struct {
	Metrics     SEOMetrics       `json:"metrics"`
	Breakdown   ScoreBreakdown   `json:"breakdown"`
	TotalScore  int              `json:"totalScore"`
	Suggestions SuggestionBundle `json:"suggestions"`
}

// PublishedPostFinder supplies internal-link candidates, ranked by the
// implementation. The engine consumes the returned order verbatim and never
// ranks, retries, or caches; any timeout policy belongs to the implementation.
type PublishedPostFinder interface {
	SearchByKeywords(ctx context.Context, primary string, secondary []string) ([]LinkSuggestion, error)
}

// ValidationError reports a post field that makes scoring impossible.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("post field %q is required", e.Field)
}
