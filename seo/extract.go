package seo

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	headingPattern = regexp.MustCompile(`(?is)<h([1-3])[^>]*>(.*?)</h[1-3]\s*>`)
)

// ExtractText strips markup from a post body, returning plain text and every
// h1-h3 heading in document order. It never fails: if the body cannot be
// parsed as a document it falls back to best-effort tag stripping, so any
// input string yields a result.
func ExtractText(body string) ExtractedText {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return extractWithRegexp(body)
	}

	var headings []Heading
	doc.Find("h1, h2, h3").Each(func(i int, s *goquery.Selection) {
		level := 0
		if node := s.Get(0); node != nil && len(node.Data) == 2 {
			level = int(node.Data[1] - '0')
		}
		headings = append(headings, Heading{
			Level:    level,
			Text:     collapseWhitespace(s.Text()),
			AnchorID: anchorID(i),
		})
	})

	var sb strings.Builder
	for _, node := range doc.Nodes {
		collectText(node, &sb)
	}

	return ExtractedText{
		PlainText: collapseWhitespace(sb.String()),
		Headings:  headings,
	}
}

// collectText appends the data of every text node under n, separated by
// spaces. Script, style and noscript subtrees carry no readable content and
// are skipped.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript":
			return
		}
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// extractWithRegexp is the parser-less fallback: every <...> span is treated
// as removable and replaced by a space, headings are captured by tag pattern.
func extractWithRegexp(body string) ExtractedText {
	var headings []Heading
	for i, m := range headingPattern.FindAllStringSubmatch(body, -1) {
		headings = append(headings, Heading{
			Level:    int(m[1][0] - '0'),
			Text:     collapseWhitespace(tagPattern.ReplaceAllString(m[2], " ")),
			AnchorID: anchorID(i),
		})
	}
	plain := collapseWhitespace(tagPattern.ReplaceAllString(body, " "))
	return ExtractedText{PlainText: plain, Headings: headings}
}

// anchorID derives a stable anchor from a heading's 0-based position among
// all extracted headings. Position-based anchors cannot collide and are
// identical across repeated extractions of the same body.
func anchorID(position int) string {
	return fmt.Sprintf("heading-%d", position)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
