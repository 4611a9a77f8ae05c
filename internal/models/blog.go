package models

import (
	"time"
)

// Blog post statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ExcerptFallback is used when an article carries no meta description
const ExcerptFallback = "Imported from String.com"

// The well-known category assigned to ingested posts, lazily created
// per workspace on first need
const (
	SeoCategorySlug  = "seo"
	SeoCategoryName  = "SEO"
	SeoCategoryColor = "#8B5CF6"
)

// BlogPost is a publishable post derived from a SeoArticle.
// Webhook-path posts are unique per seo_article_id; sync-path posts
// are unique per (workspace_id, slug).
type BlogPost struct {
	ID               string     `json:"id" db:"id"`
	Title            string     `json:"title" db:"title"`
	Slug             string     `json:"slug" db:"slug"` // empty delegates generation to the store
	Excerpt          string     `json:"excerpt" db:"excerpt"`
	Content          string     `json:"content" db:"content"`
	FeaturedImageURL string     `json:"featured_image_url,omitempty" db:"featured_image_url"`
	MetaDescription  string     `json:"meta_description,omitempty" db:"meta_description"`
	Keywords         []string   `json:"keywords" db:"keywords"`
	Status           string     `json:"status" db:"status"`
	PublishedAt      *time.Time `json:"published_at,omitempty" db:"published_at"`
	AuthorID         string     `json:"author_id" db:"author_id"`
	WorkspaceID      string     `json:"workspace_id" db:"workspace_id"`
	SeoArticleID     string     `json:"seo_article_id" db:"seo_article_id"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// BlogCategory is a classification tag, unique per (slug, workspace_id)
type BlogCategory struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Color       string    `json:"color" db:"color"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Workspace owns blog posts and resolves the post author
type Workspace struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Profile is a user profile, used only as a last-resort workspace owner
type Profile struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name,omitempty" db:"full_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
