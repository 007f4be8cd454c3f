package seo

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Helpers for auto-filling SEO fields from a post's title and body. These
// back the admin panel's "generate for me" action; the rubric never calls
// them, so a post scored with hand-written fields is unaffected.

const (
	metaTitleLimit          = 60
	ogTitleLimit            = 100
	ogDescriptionLimit      = 300
	twitterTitleLimit       = 70
	twitterDescriptionLimit = 200
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(
		"the a an and or but in on at to for of with by from as is was are were " +
			"been be have has had do does did will would should could may might " +
			"must can this that these those what which who whom whose where when " +
			"why how all each every both few more most other some such no nor not " +
			"only own same so than too very just now") {
		stopWords[w] = struct{}{}
	}
}

var wordPattern = regexp.MustCompile(`[a-zA-Z]{3,}`)

// SocialTags is a generated title/description pair for one sharing platform.
type SocialTags struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FieldReport lists blocking problems and advisory warnings found in a post's
// SEO fields.
type FieldReport struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// GenerateMetaTitle builds a meta title from the post title. When the keyword
// is missing from the title it is appended where it still fits within the
// display limit; overlong results are truncated at a word boundary.
func GenerateMetaTitle(title, keyword string) string {
	if title == "" {
		return ""
	}
	if keyword != "" && !containsFold(title, keyword) {
		switch {
		case utf8.RuneCountInString(title)+utf8.RuneCountInString(keyword)+9 <= metaTitleLimit:
			title = title + " - " + keyword + " Guide"
		case utf8.RuneCountInString(title)+utf8.RuneCountInString(keyword)+3 <= metaTitleLimit:
			title = title + " - " + keyword
		}
	}
	if utf8.RuneCountInString(title) > metaTitleLimit {
		cut := string([]rune(title)[:metaTitleLimit])
		if idx := strings.LastIndex(cut, " "); idx > 0 {
			cut = cut[:idx]
		}
		title = cut
	}
	return title
}

// ExtractPrimaryKeyword guesses a primary keyword from the post title: the
// longest non-stop-word of at least three letters, title-cased.
func ExtractPrimaryKeyword(title string) string {
	var keywords []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(title), -1) {
		if _, stop := stopWords[w]; !stop {
			keywords = append(keywords, w)
		}
	}
	if len(keywords) == 0 {
		return ""
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return len(keywords[i]) > len(keywords[j])
	})
	return titleCase(keywords[0])
}

// titleCase uppercases the first letter of an ASCII word.
func titleCase(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

// GenerateSecondaryKeywords produces up to five related phrases: fixed
// patterns around the primary keyword, then combinations with the words that
// appear most often in the post text.
func GenerateSecondaryKeywords(keyword, plainText string) []string {
	if keyword == "" {
		return nil
	}
	patterns := []string{
		keyword + " tutorial",
		keyword + " guide",
		keyword + " tips",
		"learn " + keyword,
		keyword + " best practices",
	}
	for _, w := range topContentWords(plainText, keyword, 3) {
		patterns = append(patterns, keyword+" "+w)
	}
	if len(patterns) > 5 {
		patterns = patterns[:5]
	}
	return patterns
}

// topContentWords returns the n most frequent words of at least four letters
// in the text, excluding the keyword itself.
func topContentWords(plainText, keyword string, n int) []string {
	freq := make(map[string]int)
	for _, w := range wordPattern.FindAllString(strings.ToLower(plainText), -1) {
		if len(w) >= 4 && w != strings.ToLower(keyword) {
			freq[w]++
		}
	}
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > n {
		words = words[:n]
	}
	return words
}

// GenerateOGTags builds Open Graph title and description within platform
// limits, falling back to the title when there is no description.
func GenerateOGTags(title, description string) SocialTags {
	if description == "" {
		description = title
	}
	return SocialTags{
		Title:       truncateWithEllipsis(title, ogTitleLimit),
		Description: truncateWithEllipsis(description, ogDescriptionLimit),
	}
}

// GenerateTwitterTags builds Twitter Card title and description within
// platform limits, falling back to the title when there is no description.
func GenerateTwitterTags(title, description string) SocialTags {
	if description == "" {
		description = title
	}
	return SocialTags{
		Title:       truncateWithEllipsis(title, twitterTitleLimit),
		Description: truncateWithEllipsis(description, twitterDescriptionLimit),
	}
}

func truncateWithEllipsis(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// ValidateFields reports missing required SEO fields as errors and
// suboptimal ones as warnings. Unlike scoring, which degrades silently, this
// is the authoring-time checklist shown before publication.
func ValidateFields(post PostContent) FieldReport {
	var report FieldReport

	if strings.TrimSpace(post.PrimaryKeyword) == "" {
		report.Errors = append(report.Errors, "primary keyword is required")
	}
	if post.MetaTitle == "" {
		report.Errors = append(report.Errors, "meta title is required")
	} else if n := utf8.RuneCountInString(post.MetaTitle); n > metaTitleLimit {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("meta title should be %d characters or less (currently %d)", metaTitleLimit, n))
	}
	if post.MetaDescription == "" {
		report.Errors = append(report.Errors, "meta description is required")
	} else if n := utf8.RuneCountInString(post.MetaDescription); n > metaDescriptionLimit {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("meta description should be %d characters or less (currently %d)", metaDescriptionLimit, n))
	}
	if post.OGTitle == "" {
		report.Warnings = append(report.Warnings, "OG title is recommended for social sharing")
	}
	if post.OGDescription == "" {
		report.Warnings = append(report.Warnings, "OG description is recommended for social sharing")
	}
	if post.OGImage == "" {
		report.Warnings = append(report.Warnings, "OG image is recommended for social sharing")
	}
	return report
}
