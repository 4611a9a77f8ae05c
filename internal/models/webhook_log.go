package models

import (
	"encoding/json"
	"time"
)

// Audit event types
const (
	EventArticleReceived = "article_received"
	EventArticlesSynced  = "articles_synced"
	EventBlogPostFailed  = "blog_post_creation_failed"
)

// Audit run statuses
const (
	LogStatusSuccess = "success"
	LogStatusError   = "error"
)

// WebhookLog is an append-only audit entry. Every ingestion run writes
// one top-level entry; blog-post derivation failures write additional
// entries tagged with the failing article's identifiers.
type WebhookLog struct {
	ID                string          `json:"id" db:"id"`
	Source            string          `json:"source" db:"source"`
	EventType         string          `json:"event_type" db:"event_type"`
	Payload           json.RawMessage `json:"payload,omitempty" db:"payload"`
	ProcessedCount    int             `json:"processed_count" db:"processed_count"`
	Status            string          `json:"status" db:"status"`
	ErrorMessage      string          `json:"error_message,omitempty" db:"error_message"`
	ArticleExternalID string          `json:"article_external_id,omitempty" db:"article_external_id"`
	SeoArticleID      string          `json:"seo_article_id,omitempty" db:"seo_article_id"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
}
