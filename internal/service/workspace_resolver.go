package service

import (
	"context"
	"fmt"

	"github.com/article-ingest-api/internal/models"
	"github.com/article-ingest-api/internal/repository"
	"github.com/rs/zerolog"
)

// workspaceResolver decides which workspace owns ingested blog posts.
// An explicitly configured workspace id wins and must exist. Without
// one the resolver falls back to the first workspace, bootstrapping a
// workspace from the first profile as a last resort. With no
// workspaces and no profiles it fails closed.
type workspaceResolver struct {
	workspaces  repository.WorkspaceRepository
	profiles    repository.ProfileRepository
	workspaceID string
	log         zerolog.Logger
}

func newWorkspaceResolver(workspaces repository.WorkspaceRepository, profiles repository.ProfileRepository, workspaceID string, log zerolog.Logger) *workspaceResolver {
	return &workspaceResolver{
		workspaces:  workspaces,
		profiles:    profiles,
		workspaceID: workspaceID,
		log:         log.With().Str("component", "workspace_resolver").Logger(),
	}
}

// Resolve returns the target workspace for blog post creation
func (r *workspaceResolver) Resolve(ctx context.Context) (*models.Workspace, error) {
	if r.workspaceID != "" {
		workspace, err := r.workspaces.GetByID(ctx, r.workspaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to load configured workspace: %w", err)
		}
		if workspace == nil {
			return nil, fmt.Errorf("configured workspace %s not found", r.workspaceID)
		}
		return workspace, nil
	}

	workspace, err := r.workspaces.GetFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query workspaces: %w", err)
	}
	if workspace != nil {
		return workspace, nil
	}

	// No workspace exists. Bootstrap one from the first profile; a
	// normal deployment never reaches this.
	profile, err := r.profiles.GetFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	if profile == nil {
		return nil, ErrNoWorkspace
	}

	workspace = &models.Workspace{
		Name:    "Default Workspace",
		OwnerID: profile.ID,
	}
	if err := r.workspaces.Create(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to bootstrap workspace: %w", err)
	}

	r.log.Warn().
		Str("workspace_id", workspace.ID).
		Str("owner_id", profile.ID).
		Msg("Bootstrapped default workspace from first profile")

	return workspace, nil
}
