package repository

import (
	"context"

	"github.com/article-ingest-api/internal/database"
	"github.com/article-ingest-api/internal/models"
)

// SeoArticleRepository defines the interface for canonical article records
type SeoArticleRepository interface {
	// Upsert persists the record keyed by external_id; on conflict all
	// fields are overwritten (last write wins). Returns the persisted
	// row including the store-generated id.
	Upsert(ctx context.Context, article *models.SeoArticle) (*models.SeoArticle, error)
	Count(ctx context.Context) (int, error)
}

// BlogPostRepository defines the interface for derived blog posts
type BlogPostRepository interface {
	// UpsertBySeoArticleID is the webhook-path write: one SeoArticle
	// maps to at most one post. An empty slug delegates generation to
	// the store.
	UpsertBySeoArticleID(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	// UpsertBySlug is the sync-path write, conflict target
	// (workspace_id, slug)
	UpsertBySlug(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	GetBySeoArticleID(ctx context.Context, seoArticleID string) (*models.BlogPost, error)
	// GenerateUniqueSlug produces a workspace-unique slug for a title
	GenerateUniqueSlug(ctx context.Context, title, workspaceID string) (string, error)
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines the interface for blog categories and
// their post associations
type CategoryRepository interface {
	GetBySlug(ctx context.Context, slug, workspaceID string) (*models.BlogCategory, error)
	Create(ctx context.Context, category *models.BlogCategory) error
	// Assign links a post to a category; a duplicate association is a
	// no-op, not an error
	Assign(ctx context.Context, postID, categoryID string) error
}

// WorkspaceRepository defines the interface for workspace resolution
type WorkspaceRepository interface {
	GetByID(ctx context.Context, id string) (*models.Workspace, error)
	GetFirst(ctx context.Context) (*models.Workspace, error)
	Create(ctx context.Context, workspace *models.Workspace) error
}

// ProfileRepository defines the interface for user profiles
type ProfileRepository interface {
	GetFirst(ctx context.Context) (*models.Profile, error)
}

// WebhookLogRepository defines the interface for the append-only audit log
type WebhookLogRepository interface {
	Insert(ctx context.Context, entry *models.WebhookLog) error
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	SeoArticle SeoArticleRepository
	BlogPost   BlogPostRepository
	Category   CategoryRepository
	Workspace  WorkspaceRepository
	Profile    ProfileRepository
	WebhookLog WebhookLogRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		SeoArticle: NewSeoArticleRepo(db),
		BlogPost:   NewBlogPostRepo(db),
		Category:   NewCategoryRepo(db),
		Workspace:  NewWorkspaceRepo(db),
		Profile:    NewProfileRepo(db),
		WebhookLog: NewWebhookLogRepo(db),
	}
}
