package service

import (
	"context"

	"github.com/article-ingest-api/internal/models"
	"github.com/article-ingest-api/internal/repository"
)

// assignSeoCategory ensures the well-known "seo" category exists in
// the post's workspace and links the post to it. Both the lazy create
// and the association are idempotent: re-running against the same post
// never duplicates rows or errors.
func assignSeoCategory(ctx context.Context, repos *repository.Repositories, post *models.BlogPost) error {
	category, err := repos.Category.GetBySlug(ctx, models.SeoCategorySlug, post.WorkspaceID)
	if err != nil {
		return err
	}

	if category == nil {
		category = &models.BlogCategory{
			Name:        models.SeoCategoryName,
			Slug:        models.SeoCategorySlug,
			Color:       models.SeoCategoryColor,
			WorkspaceID: post.WorkspaceID,
		}
		if createErr := repos.Category.Create(ctx, category); createErr != nil {
			// A concurrent run may have created it; re-fetch before
			// giving up
			category, err = repos.Category.GetBySlug(ctx, models.SeoCategorySlug, post.WorkspaceID)
			if err != nil {
				return err
			}
			if category == nil {
				return createErr
			}
		}
	}

	return repos.Category.Assign(ctx, post.ID, category.ID)
}
