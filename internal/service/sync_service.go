package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/article-ingest-api/internal/models"
	"github.com/article-ingest-api/internal/repository"
	"github.com/rs/zerolog"
)

// syncService is the concrete implementation of SyncService. The sync
// path is a trusted bulk import: posts are published immediately, with
// explicitly generated workspace-unique slugs.
type syncService struct {
	repos    *repository.Repositories
	resolver *workspaceResolver
	articles []models.OutrankArticle
	log      zerolog.Logger
}

// newSyncService creates a new SyncService over the fixed Outrank
// article set
func newSyncService(repos *repository.Repositories, resolver *workspaceResolver, log zerolog.Logger) *syncService {
	return &syncService{
		repos:    repos,
		resolver: resolver,
		articles: outrankArticles,
		log:      log.With().Str("service", "sync").Logger(),
	}
}

// SyncOutrank ingests the internal Outrank article set. Workspace
// resolution is fatal for the whole run; per-article failures are
// collected and the run continues.
func (s *syncService) SyncOutrank(ctx context.Context) (*models.SyncResponse, error) {
	workspace, err := s.resolver.Resolve(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("No workspace available, aborting sync")
		return nil, err
	}

	s.log.Info().
		Str("workspace_id", workspace.ID).
		Str("owner_id", workspace.OwnerID).
		Int("articles", len(s.articles)).
		Msg("Starting Outrank sync")

	now := time.Now()
	var processed []models.SyncedArticleRef
	var failures []models.SyncFailure

	for _, article := range s.articles {
		ref, failure := s.syncArticle(ctx, article, workspace, now)
		if failure != nil {
			failures = append(failures, *failure)
		}
		if ref != nil {
			processed = append(processed, *ref)
		}
	}

	// Run-level audit entry; the fixture set is internal, so the
	// payload echo is omitted
	entry := &models.WebhookLog{
		Source:         models.SourceOutrank,
		EventType:      models.EventArticlesSynced,
		ProcessedCount: len(processed),
		Status:         models.LogStatusSuccess,
	}
	if err := s.repos.WebhookLog.Insert(ctx, entry); err != nil {
		s.log.Error().Err(err).Msg("Failed to write run-level audit entry")
	}

	s.log.Info().
		Int("processed", len(processed)).
		Int("errors", len(failures)).
		Msg("Outrank sync completed")

	return &models.SyncResponse{
		Message:           "Articles synced successfully",
		ProcessedArticles: len(processed),
		Errors:            len(failures),
		Articles:          processed,
		Details:           failures,
	}, nil
}

// syncArticle handles one article inside its own failure boundary
func (s *syncService) syncArticle(ctx context.Context, article models.OutrankArticle, workspace *models.Workspace, now time.Time) (*models.SyncedArticleRef, *models.SyncFailure) {
	metadata, _ := json.Marshal(map[string]models.OutrankArticle{"original_payload": article})

	seoArticle, err := s.repos.SeoArticle.Upsert(ctx, &models.SeoArticle{
		ExternalID:        article.ID,
		Title:             article.Title,
		Content:           article.ContentMarkdown,
		ContentHTML:       article.ContentHTML,
		MetaDescription:   article.MetaDescription,
		Keywords:          article.Tags,
		ImageURL:          article.ImageURL,
		Slug:              article.Slug,
		Status:            models.StatusPublished,
		Source:            models.SourceOutrank,
		WebhookReceivedAt: now,
		Metadata:          metadata,
	})
	if err != nil {
		s.log.Error().Err(err).Str("external_id", article.ID).Msg("Failed to store SEO article")
		return nil, &models.SyncFailure{
			ArticleID: article.ID,
			Error:     fmt.Sprintf("SEO article error: %v", err),
		}
	}

	slug, err := s.resolveSlug(ctx, seoArticle, article.Title, workspace.ID)
	if err != nil {
		s.log.Error().Err(err).Str("external_id", article.ID).Msg("Failed to generate unique slug")
		return nil, &models.SyncFailure{
			ArticleID: article.ID,
			Error:     fmt.Sprintf("Slug generation error: %v", err),
		}
	}

	excerpt := article.MetaDescription
	if excerpt == "" {
		excerpt = contentExcerpt(article.ContentMarkdown)
	}

	publishedAt := now
	post, err := s.repos.BlogPost.UpsertBySlug(ctx, &models.BlogPost{
		Title:            article.Title,
		Slug:             slug,
		Excerpt:          excerpt,
		Content:          article.ContentHTML,
		FeaturedImageURL: article.ImageURL,
		MetaDescription:  article.MetaDescription,
		Keywords:         article.Tags,
		Status:           models.StatusPublished,
		PublishedAt:      &publishedAt,
		AuthorID:         workspace.OwnerID,
		WorkspaceID:      workspace.ID,
		SeoArticleID:     seoArticle.ID,
	})

	ref := &models.SyncedArticleRef{
		ExternalID: article.ID,
		Title:      article.Title,
		Status:     "processed",
	}

	if err != nil {
		// The SEO article write succeeded; record the failure without
		// dropping the article from the processed set
		s.logBlogPostFailure(ctx, article.ID, seoArticle.ID, err)
		return ref, &models.SyncFailure{
			ArticleID: article.ID,
			Error:     fmt.Sprintf("Blog post error: %v", err),
		}
	}

	if err := assignSeoCategory(ctx, s.repos, post); err != nil {
		s.log.Warn().Err(err).Str("post_id", post.ID).Msg("Failed to assign SEO category")
	}

	s.log.Info().
		Str("external_id", article.ID).
		Str("post_id", post.ID).
		Str("slug", post.Slug).
		Msg("Article synced and published")

	return ref, nil
}

// resolveSlug reuses the slug of an already-derived post so that
// re-running the sync hits the (workspace_id, slug) conflict target
// instead of colliding on seo_article_id
func (s *syncService) resolveSlug(ctx context.Context, seoArticle *models.SeoArticle, title, workspaceID string) (string, error) {
	existing, err := s.repos.BlogPost.GetBySeoArticleID(ctx, seoArticle.ID)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.Slug != "" {
		return existing.Slug, nil
	}
	return s.repos.BlogPost.GenerateUniqueSlug(ctx, title, workspaceID)
}

func (s *syncService) logBlogPostFailure(ctx context.Context, externalID, seoArticleID string, err error) {
	s.log.Error().Err(err).
		Str("external_id", externalID).
		Str("seo_article_id", seoArticleID).
		Msg("Failed to create blog post")

	entry := &models.WebhookLog{
		Source:            models.SourceOutrank,
		EventType:         models.EventBlogPostFailed,
		Status:            models.LogStatusError,
		ErrorMessage:      err.Error(),
		ArticleExternalID: externalID,
		SeoArticleID:      seoArticleID,
	}
	if logErr := s.repos.WebhookLog.Insert(ctx, entry); logErr != nil {
		s.log.Error().Err(logErr).Msg("Failed to write blog post failure audit entry")
	}
}

// contentExcerpt truncates content to a 160-character preview
func contentExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= 160 {
		return content
	}
	return string(runes[:160])
}
