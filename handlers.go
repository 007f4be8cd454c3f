package main

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/contentforge/backend/seo"
	"github.com/contentforge/backend/store"
)

// scorePost runs the full scoring cycle for a draft post.
func scorePost(c *gin.Context) {
	var post seo.PostContent
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post payload: " + err.Error()})
		return
	}

	report, err := engine.Score(c.Request.Context(), post, postStore)
	if err != nil {
		var verr *seo.ValidationError
		if errors.As(err, &verr) {
			usage.RecordValidationFailure()
			reqStats.TrackScoring(post.Slug, 0, true)
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to score post: " + err.Error()})
		return
	}

	usage.RecordScore(report.TotalScore)
	reqStats.TrackScoring(post.Slug, report.TotalScore, false)
	c.JSON(http.StatusOK, report)
}

// suggestForPost returns metrics and suggestions without applying the rubric,
// for live feedback while the author is still typing.
func suggestForPost(c *gin.Context) {
	var post seo.PostContent
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post payload: " + err.Error()})
		return
	}

	extracted := seo.ExtractText(post.Body)
	metrics := seo.CalculateMetrics(extracted, post.PrimaryKeyword)
	suggestions := seo.Suggest(c.Request.Context(), post, extracted, metrics, postStore)

	usage.RecordSuggestionRequest()
	c.JSON(http.StatusOK, gin.H{
		"metrics":     metrics,
		"suggestions": suggestions,
	})
}

// autoGenerateFields fills in every SEO field that can be derived from the
// title and body, for the admin panel's one-click setup.
func autoGenerateFields(c *gin.Context) {
	var request struct {
		Title           string `json:"title" binding:"required"`
		Body            string `json:"body"`
		ExistingKeyword string `json:"existingKeyword"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	keyword := strings.TrimSpace(request.ExistingKeyword)
	if keyword == "" {
		keyword = seo.ExtractPrimaryKeyword(request.Title)
	}

	plainText := seo.ExtractText(request.Body).PlainText
	metaDescription := seo.GenerateMetaDescription(plainText)
	og := seo.GenerateOGTags(request.Title, metaDescription)
	twitter := seo.GenerateTwitterTags(request.Title, metaDescription)

	usage.RecordAutoGenerate()
	c.JSON(http.StatusOK, gin.H{
		"primaryKeyword":     keyword,
		"secondaryKeywords":  seo.GenerateSecondaryKeywords(keyword, plainText),
		"metaTitle":          seo.GenerateMetaTitle(request.Title, keyword),
		"metaDescription":    metaDescription,
		"ogTitle":            og.Title,
		"ogDescription":      og.Description,
		"twitterTitle":       twitter.Title,
		"twitterDescription": twitter.Description,
	})
}

// validateFields returns the authoring-time checklist of missing and
// suboptimal SEO fields.
func validateFields(c *gin.Context) {
	var post seo.PostContent
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post payload: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, seo.ValidateFields(post))
}

func listPosts(c *gin.Context) {
	posts, err := postStore.ListPosts(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func createPost(c *gin.Context) {
	var post store.Post
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post payload: " + err.Error()})
		return
	}
	if strings.TrimSpace(post.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if post.Slug == "" {
		post.Slug = slugify(post.Title)
	}

	refreshDerivedSEO(c, &post)

	if err := postStore.CreatePost(c.Request.Context(), &post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, post)
}

func getPost(c *gin.Context) {
	post, err := postStore.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load post: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

func updatePost(c *gin.Context) {
	var post store.Post
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post payload: " + err.Error()})
		return
	}

	refreshDerivedSEO(c, &post)

	if err := postStore.UpdatePost(c.Request.Context(), c.Param("slug"), &post); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

func deletePost(c *gin.Context) {
	err := postStore.DeletePost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func getStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"requests":     reqStats.GetStatistics(),
		"monthlyUsage": usage.GetCurrentStats(),
	})
}

// refreshDerivedSEO recomputes the stored score and metrics for a post being
// saved. A blank body is fine at draft stage; derived fields stay zero.
func refreshDerivedSEO(c *gin.Context, post *store.Post) {
	report, err := engine.Score(c.Request.Context(), postContentOf(post), postStore)
	if err != nil {
		return
	}
	post.SEOScore = report.TotalScore
	post.KeywordDensity = report.Metrics.KeywordDensityPercent
	post.WordCount = report.Metrics.WordCount
	post.ReadingTime = report.Metrics.ReadingTimeMinutes
}

// postContentOf maps a stored post onto the engine's input record.
func postContentOf(p *store.Post) seo.PostContent {
	return seo.PostContent{
		Title:              p.Title,
		Slug:               p.Slug,
		Body:               p.Content,
		Excerpt:            p.Excerpt,
		PrimaryKeyword:     p.PrimaryKeyword,
		SecondaryKeywords:  p.SecondaryKeywords,
		MetaTitle:          p.MetaTitle,
		MetaDescription:    p.MetaDescription,
		OGTitle:            p.OGTitle,
		OGDescription:      p.OGDescription,
		OGImage:            p.OGImage,
		TwitterTitle:       p.TwitterTitle,
		TwitterDescription: p.TwitterDescription,
		TwitterImage:       p.TwitterImage,
		CanonicalURL:       p.CanonicalURL,
		SchemaType:         p.SchemaType,
		FeaturedImage:      seo.PostImage{URL: p.FeaturedImageURL, AltText: p.FeaturedImageAlt},
	}
}

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSeparator = regexp.MustCompile(`[\s-]+`)
)

// slugify builds a URL-friendly slug from a title.
func slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "")
	slug = slugSeparator.ReplaceAllString(strings.TrimSpace(slug), "-")
	if len(slug) > 75 {
		slug = strings.Trim(slug[:75], "-")
	}
	return slug
}
