package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/article-ingest-api/internal/database"
	"github.com/article-ingest-api/internal/models"
	"github.com/google/uuid"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// GetBySlug retrieves a category by its workspace-scoped slug,
// returning nil when absent
func (r *categoryRepo) GetBySlug(ctx context.Context, slug, workspaceID string) (*models.BlogCategory, error) {
	query := `
		SELECT id, name, slug, color, workspace_id, created_at
		FROM blog_categories WHERE slug = $1 AND workspace_id = $2
	`

	var category models.BlogCategory
	err := r.db.QueryRowContext(ctx, query, slug, workspaceID).Scan(
		&category.ID, &category.Name, &category.Slug, &category.Color,
		&category.WorkspaceID, &category.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// Create inserts a new category
func (r *categoryRepo) Create(ctx context.Context, category *models.BlogCategory) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.CreatedAt = time.Now()

	query := `
		INSERT INTO blog_categories (id, name, slug, color, workspace_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.Name, category.Slug, category.Color,
		category.WorkspaceID, category.CreatedAt,
	)
	return err
}

// Assign links a post to a category; re-assigning is a no-op
func (r *categoryRepo) Assign(ctx context.Context, postID, categoryID string) error {
	query := `
		INSERT INTO blog_post_categories (post_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, category_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, postID, categoryID)
	return err
}
