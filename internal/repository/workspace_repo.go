package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/article-ingest-api/internal/database"
	"github.com/article-ingest-api/internal/models"
	"github.com/google/uuid"
)

// workspaceRepo is the concrete implementation of WorkspaceRepository
type workspaceRepo struct {
	db *database.DB
}

// NewWorkspaceRepo creates a new workspace repository
func NewWorkspaceRepo(db *database.DB) WorkspaceRepository {
	return &workspaceRepo{db: db}
}

// GetByID retrieves a workspace by id, returning nil when absent
func (r *workspaceRepo) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	query := `SELECT id, name, owner_id, created_at FROM workspaces WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetFirst retrieves the oldest workspace, returning nil when none exists
func (r *workspaceRepo) GetFirst(ctx context.Context) (*models.Workspace, error) {
	query := `SELECT id, name, owner_id, created_at FROM workspaces ORDER BY created_at LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query))
}

func (r *workspaceRepo) scanOne(row *sql.Row) (*models.Workspace, error) {
	var workspace models.Workspace
	err := row.Scan(&workspace.ID, &workspace.Name, &workspace.OwnerID, &workspace.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

// Create inserts a new workspace
func (r *workspaceRepo) Create(ctx context.Context, workspace *models.Workspace) error {
	if workspace.ID == "" {
		workspace.ID = uuid.New().String()
	}
	workspace.CreatedAt = time.Now()

	query := `INSERT INTO workspaces (id, name, owner_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query,
		workspace.ID, workspace.Name, workspace.OwnerID, workspace.CreatedAt,
	)
	return err
}

// profileRepo is the concrete implementation of ProfileRepository
type profileRepo struct {
	db *database.DB
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *database.DB) ProfileRepository {
	return &profileRepo{db: db}
}

// GetFirst retrieves the oldest profile, returning nil when none exists
func (r *profileRepo) GetFirst(ctx context.Context) (*models.Profile, error) {
	query := `SELECT id, email, full_name, created_at FROM profiles ORDER BY created_at LIMIT 1`

	var profile models.Profile
	var fullName sql.NullString
	err := r.db.QueryRowContext(ctx, query).Scan(
		&profile.ID, &profile.Email, &fullName, &profile.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	profile.FullName = fullName.String
	return &profile, nil
}
