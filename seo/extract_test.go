package seo

import (
	"reflect"
	"testing"
)

func TestExtractText(t *testing.T) {
	t.Run("PlainText", func(t *testing.T) {
		got := ExtractText("<p>Hello   <b>bold</b> world</p><p>second paragraph</p>")
		want := "Hello bold world second paragraph"
		if got.PlainText != want {
			t.Errorf("Expected plain text %q, got %q", want, got.PlainText)
		}
	})

	t.Run("SkipsScriptAndStyle", func(t *testing.T) {
		body := "<style>p{color:red}</style><p>visible</p><script>var x = 1;</script>"
		got := ExtractText(body)
		if got.PlainText != "visible" {
			t.Errorf("Expected script/style content to be skipped, got %q", got.PlainText)
		}
	})

	t.Run("HeadingsInDocumentOrder", func(t *testing.T) {
		body := "<h2>Second level</h2><p>text</p><h1>First level</h1><h3>Third level</h3>"
		got := ExtractText(body)

		want := []Heading{
			{Level: 2, Text: "Second level", AnchorID: "heading-0"},
			{Level: 1, Text: "First level", AnchorID: "heading-1"},
			{Level: 3, Text: "Third level", AnchorID: "heading-2"},
		}
		if !reflect.DeepEqual(got.Headings, want) {
			t.Errorf("Expected headings %+v, got %+v", want, got.Headings)
		}
	})

	t.Run("EmptyHeadingStillCounted", func(t *testing.T) {
		got := ExtractText("<h2></h2><h2>Real heading</h2>")
		if len(got.Headings) != 2 {
			t.Fatalf("Expected 2 headings, got %d", len(got.Headings))
		}
		if got.Headings[0].Text != "" {
			t.Errorf("Expected empty heading text, got %q", got.Headings[0].Text)
		}
		if got.Headings[1].AnchorID != "heading-1" {
			t.Errorf("Expected anchor heading-1, got %q", got.Headings[1].AnchorID)
		}
	})

	t.Run("DeeperHeadingLevelsIgnored", func(t *testing.T) {
		got := ExtractText("<h4>too deep</h4><h1>kept</h1><h5>too deep</h5>")
		if len(got.Headings) != 1 {
			t.Fatalf("Expected 1 heading, got %d", len(got.Headings))
		}
		if got.Headings[0].Text != "kept" {
			t.Errorf("Expected heading %q, got %q", "kept", got.Headings[0].Text)
		}
	})

	t.Run("MalformedMarkupNeverFails", func(t *testing.T) {
		inputs := []string{
			"",
			"<p>unclosed",
			"<<>><h1>odd<h2>nesting",
			"plain text without any tags",
			"<h1>heading with <b>unclosed bold</h1>",
		}
		for _, input := range inputs {
			got := ExtractText(input) // must not panic
			_ = got
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		body := "<h1>One</h1><p>body text</p><h2>Two</h2><h3>Three</h3>"
		first := ExtractText(body)
		second := ExtractText(body)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Extraction is not idempotent: %+v vs %+v", first, second)
		}
	})
}

func TestExtractWithRegexp(t *testing.T) {
	// The fallback path is exercised directly since the DOM parser accepts
	// nearly anything.
	got := extractWithRegexp("<h1 class=\"x\">Title</h1><p>one two</p>")
	if got.PlainText != "Title one two" {
		t.Errorf("Expected fallback plain text %q, got %q", "Title one two", got.PlainText)
	}
	if len(got.Headings) != 1 || got.Headings[0].Level != 1 || got.Headings[0].Text != "Title" {
		t.Errorf("Expected fallback heading Title at level 1, got %+v", got.Headings)
	}
	if got.Headings[0].AnchorID != "heading-0" {
		t.Errorf("Expected anchor heading-0, got %q", got.Headings[0].AnchorID)
	}
}
