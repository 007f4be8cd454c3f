package seo

import (
	"context"
	"strings"
	"unicode/utf8"
)

// metaDescriptionLimit is the longest meta description search engines display
// in full.
const metaDescriptionLimit = 155

const maxInternalLinks = 5

var headingTemplates = []string{
	"What is %s",
	"How to %s",
	"%s vs Alternatives",
	"Benefits of %s",
	"Common Mistakes with %s",
}

var faqTemplates = []string{
	"What is %s?",
	"How does %s work?",
	"Why is %s important?",
	"Is %s worth it?",
}

// Suggest derives the improvement suggestions for a post: heading and FAQ
// templates built around the primary keyword, an auto-generated meta
// description when none was written, and internal-link candidates from the
// injected finder. A finder failure degrades to an empty link list rather
// than aborting the call.
func Suggest(ctx context.Context, post PostContent, extracted ExtractedText, metrics SEOMetrics, finder PublishedPostFinder) SuggestionBundle {
	keyword := strings.TrimSpace(post.PrimaryKeyword)

	bundle := SuggestionBundle{
		HeadingSuggestions: suggestHeadings(keyword, extracted.Headings),
		FAQSuggestions:     suggestFAQs(keyword),
	}

	if post.MetaDescription == "" {
		bundle.GeneratedMetaDescription = GenerateMetaDescription(extracted.PlainText)
	}

	if finder != nil && (keyword != "" || len(post.SecondaryKeywords) > 0) {
		if candidates, err := finder.SearchByKeywords(ctx, keyword, post.SecondaryKeywords); err == nil {
			bundle.InternalLinkSuggestions = filterLinkCandidates(candidates, post.Slug)
		}
	}

	return bundle
}

// suggestHeadings offers up to (3 - headingCount) keyword templates when the
// post has fewer than three headings, skipping any template already covered
// by an existing heading (case-insensitive substring match).
func suggestHeadings(keyword string, headings []Heading) []string {
	missing := 3 - len(headings)
	if keyword == "" || missing <= 0 {
		return nil
	}

	var suggestions []string
	for _, tmpl := range headingTemplates {
		if len(suggestions) == missing {
			break
		}
		candidate := strings.ReplaceAll(tmpl, "%s", keyword)
		if !headingExists(headings, candidate) {
			suggestions = append(suggestions, candidate)
		}
	}
	return suggestions
}

func headingExists(headings []Heading, candidate string) bool {
	for _, h := range headings {
		if containsFold(h.Text, candidate) {
			return true
		}
	}
	return false
}

// suggestFAQs is offered regardless of heading structure; an FAQ section is
// worth adding to any post.
func suggestFAQs(keyword string) []string {
	if keyword == "" {
		return nil
	}
	faqs := make([]string, 0, len(faqTemplates))
	for _, tmpl := range faqTemplates {
		faqs = append(faqs, strings.ReplaceAll(tmpl, "%s", keyword))
	}
	return faqs
}

// GenerateMetaDescription takes the leading plain text up to the display
// limit, truncated at the last whole word, with a trailing ellipsis only when
// something was cut. The keyword is never force-inserted: a description that
// reads naturally without it beats one that doesn't parse.
func GenerateMetaDescription(plainText string) string {
	text := collapseWhitespace(plainText)
	if utf8.RuneCountInString(text) <= metaDescriptionLimit {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:metaDescriptionLimit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "..."
}

// filterLinkCandidates drops the post being scored and keeps the finder's
// order, capped at maxInternalLinks.
func filterLinkCandidates(candidates []LinkSuggestion, currentSlug string) []LinkSuggestion {
	var links []LinkSuggestion
	for _, c := range candidates {
		if currentSlug != "" && c.Slug == currentSlug {
			continue
		}
		links = append(links, c)
		if len(links) == maxInternalLinks {
			break
		}
	}
	return links
}
