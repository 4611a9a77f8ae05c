package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/article-ingest-api/internal/database"
	"github.com/article-ingest-api/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// blogPostRepo is the concrete implementation of BlogPostRepository
type blogPostRepo struct {
	db *database.DB
}

// NewBlogPostRepo creates a new blog post repository
func NewBlogPostRepo(db *database.DB) BlogPostRepository {
	return &blogPostRepo{db: db}
}

// UpsertBySeoArticleID inserts or overwrites the post derived from one
// SeoArticle. A NULL slug is filled by the store's slug trigger.
func (r *blogPostRepo) UpsertBySeoArticleID(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	query := `
		INSERT INTO blog_posts (
			id, title, slug, excerpt, content, featured_image_url,
			meta_description, keywords, status, published_at,
			author_id, workspace_id, seo_article_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (seo_article_id) DO UPDATE SET
			title = EXCLUDED.title,
			excerpt = EXCLUDED.excerpt,
			content = EXCLUDED.content,
			featured_image_url = EXCLUDED.featured_image_url,
			meta_description = EXCLUDED.meta_description,
			keywords = EXCLUDED.keywords,
			status = EXCLUDED.status,
			published_at = EXCLUDED.published_at,
			author_id = EXCLUDED.author_id,
			workspace_id = EXCLUDED.workspace_id,
			updated_at = EXCLUDED.updated_at
		RETURNING id, slug, created_at, updated_at
	`
	return r.upsert(ctx, query, post)
}

// UpsertBySlug is the sync-path write; the conflict target is the
// workspace-scoped slug
func (r *blogPostRepo) UpsertBySlug(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	query := `
		INSERT INTO blog_posts (
			id, title, slug, excerpt, content, featured_image_url,
			meta_description, keywords, status, published_at,
			author_id, workspace_id, seo_article_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (workspace_id, slug) DO UPDATE SET
			title = EXCLUDED.title,
			excerpt = EXCLUDED.excerpt,
			content = EXCLUDED.content,
			featured_image_url = EXCLUDED.featured_image_url,
			meta_description = EXCLUDED.meta_description,
			keywords = EXCLUDED.keywords,
			status = EXCLUDED.status,
			published_at = EXCLUDED.published_at,
			author_id = EXCLUDED.author_id,
			seo_article_id = EXCLUDED.seo_article_id,
			updated_at = EXCLUDED.updated_at
		RETURNING id, slug, created_at, updated_at
	`
	return r.upsert(ctx, query, post)
}

func (r *blogPostRepo) upsert(ctx context.Context, query string, post *models.BlogPost) (*models.BlogPost, error) {
	now := time.Now()

	// Empty slug becomes NULL so the store generates one
	var slug interface{}
	if post.Slug != "" {
		slug = post.Slug
	}

	persisted := *post
	var persistedSlug sql.NullString
	err := r.db.QueryRowContext(ctx, query,
		uuid.New().String(), post.Title, slug, post.Excerpt, post.Content,
		post.FeaturedImageURL, post.MetaDescription, pq.Array(post.Keywords),
		post.Status, post.PublishedAt, post.AuthorID, post.WorkspaceID,
		post.SeoArticleID, now, now,
	).Scan(&persisted.ID, &persistedSlug, &persisted.CreatedAt, &persisted.UpdatedAt)
	if err != nil {
		return nil, err
	}
	persisted.Slug = persistedSlug.String

	return &persisted, nil
}

// GetBySeoArticleID retrieves the post derived from a SeoArticle
func (r *blogPostRepo) GetBySeoArticleID(ctx context.Context, seoArticleID string) (*models.BlogPost, error) {
	query := `
		SELECT id, title, slug, excerpt, content, featured_image_url,
		       meta_description, keywords, status, published_at,
		       author_id, workspace_id, seo_article_id, created_at, updated_at
		FROM blog_posts WHERE seo_article_id = $1
	`

	var post models.BlogPost
	var slug sql.NullString
	var publishedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, seoArticleID).Scan(
		&post.ID, &post.Title, &slug, &post.Excerpt, &post.Content,
		&post.FeaturedImageURL, &post.MetaDescription, pq.Array(&post.Keywords),
		&post.Status, &publishedAt, &post.AuthorID, &post.WorkspaceID,
		&post.SeoArticleID, &post.CreatedAt, &post.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	post.Slug = slug.String
	if publishedAt.Valid {
		post.PublishedAt = &publishedAt.Time
	}

	return &post, nil
}

// GenerateUniqueSlug delegates to the generate_unique_blog_slug
// function so both ingestion paths share one collision strategy
func (r *blogPostRepo) GenerateUniqueSlug(ctx context.Context, title, workspaceID string) (string, error) {
	var slug string
	err := r.db.QueryRowContext(ctx,
		"SELECT generate_unique_blog_slug($1, $2)", title, workspaceID,
	).Scan(&slug)
	return slug, err
}

// Count returns the total number of blog posts
func (r *blogPostRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blog_posts").Scan(&count)
	return count, err
}
