package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/contentforge/backend/seo"
)

var _ seo.PublishedPostFinder = (*Store)(nil)

// SearchByKeywords implements seo.PublishedPostFinder. Published posts are
// ranked by how many of the supplied phrases match their title or keyword
// columns (case-insensitive), ties broken by most recently updated. The
// scoring engine consumes this order verbatim.
func (s *Store) SearchByKeywords(ctx context.Context, primary string, secondary []string) ([]seo.LinkSuggestion, error) {
	phrases := make([]string, 0, len(secondary)+1)
	if p := strings.TrimSpace(primary); p != "" {
		phrases = append(phrases, strings.ToLower(p))
	}
	for _, kw := range secondary {
		if kw = strings.TrimSpace(kw); kw != "" {
			phrases = append(phrases, strings.ToLower(kw))
		}
	}
	if len(phrases) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.title, p.slug,
			lower(p.title), lower(COALESCE(s.primary_keyword, '')), lower(COALESCE(s.secondary_keywords, ''))
		 FROM posts p LEFT JOIN post_seo s ON s.post_id = p.id
		 WHERE p.status = ?
		 ORDER BY p.updated_at DESC`, StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	defer rows.Close()

	type candidate struct {
		link seo.LinkSuggestion
		hits int
	}
	var candidates []candidate
	for rows.Next() {
		var c candidate
		var title, keyword, secondaries string
		if err := rows.Scan(&c.link.Title, &c.link.Slug, &title, &keyword, &secondaries); err != nil {
			return nil, err
		}
		haystack := title + " " + keyword + " " + secondaries
		for _, phrase := range phrases {
			if strings.Contains(haystack, phrase) {
				c.hits++
			}
		}
		if c.hits > 0 {
			candidates = append(candidates, c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows arrive recency-ordered; a stable sort keeps that order inside
	// each hit count.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].hits > candidates[j].hits
	})

	links := make([]seo.LinkSuggestion, 0, len(candidates))
	for _, c := range candidates {
		links = append(links, c.link)
	}
	return links, nil
}
