package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no post matches the requested slug.
var ErrNotFound = errors.New("post not found")

// Post statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Schema for the posts and post_seo tables, applied on Open.
const schema = `
CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	content TEXT NOT NULL,
	excerpt TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'draft',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS post_seo (
	post_id INTEGER PRIMARY KEY REFERENCES posts(id) ON DELETE CASCADE,
	primary_keyword TEXT NOT NULL DEFAULT '',
	secondary_keywords TEXT NOT NULL DEFAULT '',
	meta_title TEXT NOT NULL DEFAULT '',
	meta_description TEXT NOT NULL DEFAULT '',
	og_title TEXT NOT NULL DEFAULT '',
	og_description TEXT NOT NULL DEFAULT '',
	og_image TEXT NOT NULL DEFAULT '',
	twitter_title TEXT NOT NULL DEFAULT '',
	twitter_description TEXT NOT NULL DEFAULT '',
	twitter_image TEXT NOT NULL DEFAULT '',
	canonical_url TEXT NOT NULL DEFAULT '',
	schema_type TEXT NOT NULL DEFAULT 'Article',
	featured_image_url TEXT NOT NULL DEFAULT '',
	featured_image_alt TEXT NOT NULL DEFAULT '',
	seo_score INTEGER NOT NULL DEFAULT 0,
	keyword_density REAL NOT NULL DEFAULT 0,
	word_count INTEGER NOT NULL DEFAULT 0,
	reading_time INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_posts_status ON posts(status);
CREATE INDEX IF NOT EXISTS idx_post_seo_keyword ON post_seo(primary_keyword);
`

// Post is a stored article together with its SEO metadata.
type Post struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Slug               string    `json:"slug"`
	Content            string    `json:"content"`
	Excerpt            string    `json:"excerpt"`
	Author             string    `json:"author"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
	PrimaryKeyword     string    `json:"primaryKeyword"`
	SecondaryKeywords  []string  `json:"secondaryKeywords"`
	MetaTitle          string    `json:"metaTitle"`
	MetaDescription    string    `json:"metaDescription"`
	OGTitle            string    `json:"ogTitle"`
	OGDescription      string    `json:"ogDescription"`
	OGImage            string    `json:"ogImage"`
	TwitterTitle       string    `json:"twitterTitle"`
	TwitterDescription string    `json:"twitterDescription"`
	TwitterImage       string    `json:"twitterImage"`
	CanonicalURL       string    `json:"canonicalUrl"`
	SchemaType         string    `json:"schemaType"`
	FeaturedImageURL   string    `json:"featuredImageUrl"`
	FeaturedImageAlt   string    `json:"featuredImageAlt"`
	SEOScore           int       `json:"seoScore"`
	KeywordDensity     float64   `json:"keywordDensity"`
	WordCount          int       `json:"wordCount"`
	ReadingTime        int       `json:"readingTime"`
}

// Store persists posts and their SEO metadata in SQLite. Stored content is
// sanitized with a UGC policy, so markup coming back out of the store is safe
// to render.
type Store struct {
	db        *sql.DB
	sanitizer *bluemonday.Policy
}

// Open opens (creating if needed) the SQLite database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{
		db:        db,
		sanitizer: bluemonday.UGCPolicy(),
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreatePost inserts a post and its SEO row in one transaction. The content
// is sanitized before it is written.
func (s *Store) CreatePost(ctx context.Context, p *Post) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Content = s.sanitizer.Sanitize(p.Content)
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.SchemaType == "" {
		p.SchemaType = "Article"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO posts (title, slug, content, excerpt, author, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.Author, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("post id: %w", err)
	}

	if err := upsertSEO(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdatePost rewrites a post identified by slug.
func (s *Store) UpdatePost(ctx context.Context, slug string, p *Post) error {
	existing, err := s.GetPostBySlug(ctx, slug)
	if err != nil {
		return err
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	p.Content = s.sanitizer.Sanitize(p.Content)
	if p.Slug == "" {
		p.Slug = slug
	}
	if p.Status == "" {
		p.Status = existing.Status
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE posts SET title = ?, slug = ?, content = ?, excerpt = ?, author = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.Author, p.Status, p.UpdatedAt, p.ID); err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	if err := upsertSEO(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func upsertSEO(ctx context.Context, tx *sql.Tx, p *Post) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO post_seo (post_id, primary_keyword, secondary_keywords, meta_title, meta_description,
			og_title, og_description, og_image, twitter_title, twitter_description, twitter_image,
			canonical_url, schema_type, featured_image_url, featured_image_alt,
			seo_score, keyword_density, word_count, reading_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(post_id) DO UPDATE SET
			primary_keyword = excluded.primary_keyword,
			secondary_keywords = excluded.secondary_keywords,
			meta_title = excluded.meta_title,
			meta_description = excluded.meta_description,
			og_title = excluded.og_title,
			og_description = excluded.og_description,
			og_image = excluded.og_image,
			twitter_title = excluded.twitter_title,
			twitter_description = excluded.twitter_description,
			twitter_image = excluded.twitter_image,
			canonical_url = excluded.canonical_url,
			schema_type = excluded.schema_type,
			featured_image_url = excluded.featured_image_url,
			featured_image_alt = excluded.featured_image_alt,
			seo_score = excluded.seo_score,
			keyword_density = excluded.keyword_density,
			word_count = excluded.word_count,
			reading_time = excluded.reading_time`,
		p.ID, p.PrimaryKeyword, joinKeywords(p.SecondaryKeywords), p.MetaTitle, p.MetaDescription,
		p.OGTitle, p.OGDescription, p.OGImage, p.TwitterTitle, p.TwitterDescription, p.TwitterImage,
		p.CanonicalURL, p.SchemaType, p.FeaturedImageURL, p.FeaturedImageAlt,
		p.SEOScore, p.KeywordDensity, p.WordCount, p.ReadingTime)
	if err != nil {
		return fmt.Errorf("upsert post seo: %w", err)
	}
	return nil
}

const selectPost = `
SELECT p.id, p.title, p.slug, p.content, p.excerpt, p.author, p.status, p.created_at, p.updated_at,
	COALESCE(s.primary_keyword, ''), COALESCE(s.secondary_keywords, ''),
	COALESCE(s.meta_title, ''), COALESCE(s.meta_description, ''),
	COALESCE(s.og_title, ''), COALESCE(s.og_description, ''), COALESCE(s.og_image, ''),
	COALESCE(s.twitter_title, ''), COALESCE(s.twitter_description, ''), COALESCE(s.twitter_image, ''),
	COALESCE(s.canonical_url, ''), COALESCE(s.schema_type, 'Article'),
	COALESCE(s.featured_image_url, ''), COALESCE(s.featured_image_alt, ''),
	COALESCE(s.seo_score, 0), COALESCE(s.keyword_density, 0),
	COALESCE(s.word_count, 0), COALESCE(s.reading_time, 0)
FROM posts p LEFT JOIN post_seo s ON s.post_id = p.id`

// GetPostBySlug returns the post with the given slug, or ErrNotFound.
func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	row := s.db.QueryRowContext(ctx, selectPost+" WHERE p.slug = ?", slug)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// ListPosts returns posts newest first, optionally filtered by status.
func (s *Store) ListPosts(ctx context.Context, status string) ([]*Post, error) {
	query := selectPost
	var args []any
	if status != "" {
		query += " WHERE p.status = ?"
		args = append(args, status)
	}
	query += " ORDER BY p.updated_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// DeletePost removes the post with the given slug, or returns ErrNotFound.
func (s *Store) DeletePost(ctx context.Context, slug string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE slug = ?", slug)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var p Post
	var secondaries string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Author, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
		&p.PrimaryKeyword, &secondaries,
		&p.MetaTitle, &p.MetaDescription,
		&p.OGTitle, &p.OGDescription, &p.OGImage,
		&p.TwitterTitle, &p.TwitterDescription, &p.TwitterImage,
		&p.CanonicalURL, &p.SchemaType,
		&p.FeaturedImageURL, &p.FeaturedImageAlt,
		&p.SEOScore, &p.KeywordDensity, &p.WordCount, &p.ReadingTime)
	if err != nil {
		return nil, err
	}
	p.SecondaryKeywords = splitKeywords(secondaries)
	return &p, nil
}

// Secondary keywords live in one TEXT column, comma-separated, matching how
// the admin form submits them.
func joinKeywords(keywords []string) string {
	return strings.Join(keywords, ", ")
}

func splitKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}
