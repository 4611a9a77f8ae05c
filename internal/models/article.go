package models

import (
	"encoding/json"
	"time"
)

// Article source tags identifying the origin system
const (
	SourceString  = "string.com"
	SourceOutrank = "outrank"
)

// ExternalArticle represents an externally-authored article payload.
// Raw inbound fields are untrusted; Normalize fills the fallbacks.
type ExternalArticle struct {
	ExternalID      string   `json:"id"`
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	ContentHTML     string   `json:"content_html,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	URL             string   `json:"url,omitempty"`
	PublishedAt     string   `json:"published_at,omitempty"`
	Status          string   `json:"status,omitempty"`
	SeoScore        *float64 `json:"seo_score,omitempty"`
}

// SeoArticle is the canonical stored record, unique per external_id.
// Re-ingestion with the same external_id overwrites all fields.
type SeoArticle struct {
	ID                string          `json:"id" db:"id"`
	ExternalID        string          `json:"external_id" db:"external_id"`
	Title             string          `json:"title" db:"title"`
	Content           string          `json:"content" db:"content"`
	ContentHTML       string          `json:"content_html,omitempty" db:"content_html"`
	MetaDescription   string          `json:"meta_description,omitempty" db:"meta_description"`
	Keywords          []string        `json:"keywords" db:"keywords"`
	ImageURL          string          `json:"image_url,omitempty" db:"image_url"`
	Slug              string          `json:"slug,omitempty" db:"slug"`
	URL               string          `json:"url,omitempty" db:"url"`
	PublishedAt       *time.Time      `json:"published_at,omitempty" db:"published_at"`
	Status            string          `json:"status" db:"status"`
	SeoScore          *float64        `json:"seo_score,omitempty" db:"seo_score"`
	Source            string          `json:"source" db:"source"`
	WebhookReceivedAt time.Time       `json:"webhook_received_at" db:"webhook_received_at"`
	Metadata          json.RawMessage `json:"metadata,omitempty" db:"metadata"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// OutrankArticle is an article from the Outrank bulk-sync source
type OutrankArticle struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ContentMarkdown string    `json:"content_markdown"`
	ContentHTML     string    `json:"content_html"`
	MetaDescription string    `json:"meta_description"`
	CreatedAt       time.Time `json:"created_at"`
	ImageURL        string    `json:"image_url"`
	Slug            string    `json:"slug"`
	Tags            []string  `json:"tags"`
}
