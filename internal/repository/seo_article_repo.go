package repository

import (
	"context"
	"time"

	"github.com/article-ingest-api/internal/database"
	"github.com/article-ingest-api/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// seoArticleRepo is the concrete implementation of SeoArticleRepository
type seoArticleRepo struct {
	db *database.DB
}

// NewSeoArticleRepo creates a new SEO article repository
func NewSeoArticleRepo(db *database.DB) SeoArticleRepository {
	return &seoArticleRepo{db: db}
}

// Upsert inserts or fully overwrites the article keyed by external_id
func (r *seoArticleRepo) Upsert(ctx context.Context, article *models.SeoArticle) (*models.SeoArticle, error) {
	now := time.Now()
	query := `
		INSERT INTO seo_articles (
			id, external_id, title, content, content_html, meta_description,
			keywords, image_url, slug, url, published_at, status, seo_score,
			source, webhook_received_at, metadata, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (external_id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			content_html = EXCLUDED.content_html,
			meta_description = EXCLUDED.meta_description,
			keywords = EXCLUDED.keywords,
			image_url = EXCLUDED.image_url,
			slug = EXCLUDED.slug,
			url = EXCLUDED.url,
			published_at = EXCLUDED.published_at,
			status = EXCLUDED.status,
			seo_score = EXCLUDED.seo_score,
			source = EXCLUDED.source,
			webhook_received_at = EXCLUDED.webhook_received_at,
			metadata = EXCLUDED.metadata,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`

	metadata := article.Metadata
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}

	persisted := *article
	err := r.db.QueryRowContext(ctx, query,
		uuid.New().String(), article.ExternalID, article.Title, article.Content,
		article.ContentHTML, article.MetaDescription, pq.Array(article.Keywords),
		article.ImageURL, article.Slug, article.URL, article.PublishedAt,
		article.Status, article.SeoScore, article.Source,
		article.WebhookReceivedAt, []byte(metadata), now, now,
	).Scan(&persisted.ID, &persisted.CreatedAt, &persisted.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &persisted, nil
}

// Count returns the total number of stored articles
func (r *seoArticleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM seo_articles").Scan(&count)
	return count, err
}
