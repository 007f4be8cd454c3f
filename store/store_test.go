package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "posts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPostCRUD(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	post := &Post{
		Title:             "Getting Started with Go",
		Slug:              "getting-started-with-go",
		Content:           "<p>Go is a compiled language.</p>",
		Excerpt:           "A first look at Go.",
		Author:            "jane",
		Status:            StatusPublished,
		PrimaryKeyword:    "go",
		SecondaryKeywords: []string{"go tutorial", "learn go"},
		MetaTitle:         "Getting Started with Go",
		SEOScore:          72,
	}
	require.NoError(t, s.CreatePost(ctx, post))
	require.NotZero(t, post.ID)

	got, err := s.GetPostBySlug(ctx, "getting-started-with-go")
	require.NoError(t, err)
	require.Equal(t, post.Title, got.Title)
	require.Equal(t, []string{"go tutorial", "learn go"}, got.SecondaryKeywords)
	require.Equal(t, 72, got.SEOScore)
	require.Equal(t, "Article", got.SchemaType)

	got.Title = "Getting Started with Go, Revised"
	got.SEOScore = 85
	require.NoError(t, s.UpdatePost(ctx, "getting-started-with-go", got))

	updated, err := s.GetPostBySlug(ctx, "getting-started-with-go")
	require.NoError(t, err)
	require.Equal(t, "Getting Started with Go, Revised", updated.Title)
	require.Equal(t, 85, updated.SEOScore)
	require.Equal(t, post.CreatedAt.Unix(), updated.CreatedAt.Unix())

	require.NoError(t, s.DeletePost(ctx, "getting-started-with-go"))
	_, err = s.GetPostBySlug(ctx, "getting-started-with-go")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.GetPostBySlug(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.DeletePost(ctx, "missing"), ErrNotFound)
	require.ErrorIs(t, s.UpdatePost(ctx, "missing", &Post{Title: "x"}), ErrNotFound)
}

func TestContentSanitized(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	post := &Post{
		Title:   "Sanitize me",
		Slug:    "sanitize-me",
		Content: `<p>fine</p><script>alert("xss")</script>`,
	}
	require.NoError(t, s.CreatePost(ctx, post))

	got, err := s.GetPostBySlug(ctx, "sanitize-me")
	require.NoError(t, err)
	require.NotContains(t, got.Content, "<script>")
	require.Contains(t, got.Content, "<p>fine</p>")
}

func TestListPosts(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.CreatePost(ctx, &Post{Title: "Draft", Slug: "draft", Content: "x"}))
	require.NoError(t, s.CreatePost(ctx, &Post{Title: "Live", Slug: "live", Content: "x", Status: StatusPublished}))

	all, err := s.ListPosts(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	published, err := s.ListPosts(ctx, StatusPublished)
	require.NoError(t, err)
	require.Len(t, published, 1)
	require.Equal(t, "live", published[0].Slug)
}

func TestSearchByKeywords(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	posts := []*Post{
		{Title: "Python Basics", Slug: "python-basics", Content: "x", Status: StatusPublished, PrimaryKeyword: "python"},
		{Title: "Advanced Python Testing", Slug: "advanced-python-testing", Content: "x", Status: StatusPublished, PrimaryKeyword: "python", SecondaryKeywords: []string{"testing"}},
		{Title: "Gardening 101", Slug: "gardening-101", Content: "x", Status: StatusPublished, PrimaryKeyword: "gardening"},
		{Title: "Python Draft", Slug: "python-draft", Content: "x", Status: StatusDraft, PrimaryKeyword: "python"},
	}
	for _, p := range posts {
		require.NoError(t, s.CreatePost(ctx, p))
	}

	t.Run("RanksByMatchCount", func(t *testing.T) {
		links, err := s.SearchByKeywords(ctx, "python", []string{"testing"})
		require.NoError(t, err)
		require.Len(t, links, 2)
		// Two phrase hits beat one.
		require.Equal(t, "advanced-python-testing", links[0].Slug)
		require.Equal(t, "python-basics", links[1].Slug)
	})

	t.Run("ExcludesDrafts", func(t *testing.T) {
		links, err := s.SearchByKeywords(ctx, "python", nil)
		require.NoError(t, err)
		for _, l := range links {
			require.NotEqual(t, "python-draft", l.Slug)
		}
	})

	t.Run("NoPhrases", func(t *testing.T) {
		links, err := s.SearchByKeywords(ctx, "  ", nil)
		require.NoError(t, err)
		require.Empty(t, links)
	})

	t.Run("NoMatches", func(t *testing.T) {
		links, err := s.SearchByKeywords(ctx, "kubernetes", nil)
		require.NoError(t, err)
		require.Empty(t, links)
	})
}
