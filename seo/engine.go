package seo

import (
	"context"
	"strings"
)

// Engine is the single entry point for scoring a draft post. It holds no
// state, so one Engine may be shared by any number of concurrent callers.
type Engine struct{}

// NewEngine creates a scoring engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Score runs the full request/response cycle: extract text, derive metrics,
// apply the rubric and generate suggestions, returned together as one Report.
//
// It returns a *ValidationError only when the post body is blank; any other
// missing field degrades the corresponding rubric factor instead of failing,
// so callers always receive either a complete report or a single validation
// message. The finder may be nil, in which case no internal links are
// suggested.
func (e *Engine) Score(ctx context.Context, post PostContent, finder PublishedPostFinder) (*Report, error) {
	if strings.TrimSpace(post.Body) == "" {
		return nil, &ValidationError{Field: "body"}
	}

	extracted := ExtractText(post.Body)
	metrics := CalculateMetrics(extracted, post.PrimaryKeyword)
	breakdown := ScoreRubric(post, extracted.PlainText, metrics)

	return &Report{
		Metrics:     metrics,
		Breakdown:   breakdown,
		TotalScore:  breakdown.Total(),
		Suggestions: Suggest(ctx, post, extracted, metrics, finder),
	}, nil
}
