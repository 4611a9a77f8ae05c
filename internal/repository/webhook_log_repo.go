package repository

import (
	"context"
	"time"

	"github.com/article-ingest-api/internal/database"
	"github.com/article-ingest-api/internal/models"
	"github.com/google/uuid"
)

// webhookLogRepo is the concrete implementation of WebhookLogRepository
type webhookLogRepo struct {
	db *database.DB
}

// NewWebhookLogRepo creates a new webhook log repository
func NewWebhookLogRepo(db *database.DB) WebhookLogRepository {
	return &webhookLogRepo{db: db}
}

// Insert appends an audit entry. The log is append-only; nothing in
// the pipeline updates or deletes entries.
func (r *webhookLogRepo) Insert(ctx context.Context, entry *models.WebhookLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	var payload interface{}
	if len(entry.Payload) > 0 {
		payload = []byte(entry.Payload)
	}

	query := `
		INSERT INTO webhook_logs (
			id, source, event_type, payload, processed_count, status,
			error_message, article_external_id, seo_article_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Source, entry.EventType, payload, entry.ProcessedCount,
		entry.Status, entry.ErrorMessage, entry.ArticleExternalID,
		entry.SeoArticleID, entry.CreatedAt,
	)
	return err
}

// Count returns the total number of audit entries
func (r *webhookLogRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM webhook_logs").Scan(&count)
	return count, err
}
