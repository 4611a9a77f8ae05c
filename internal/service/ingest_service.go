package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/article-ingest-api/internal/ingest"
	"github.com/article-ingest-api/internal/models"
	"github.com/article-ingest-api/internal/repository"
	"github.com/rs/zerolog"
)

// IngestResult is the per-article outcome of a webhook run. Err is a
// failed primary write (article abandoned); DerivationErr is a failed
// blog-post derivation after a successful write (SeoArticle retained).
type IngestResult struct {
	ExternalID    string
	SeoArticle    *models.SeoArticle
	BlogPost      *models.BlogPost
	Err           error
	DerivationErr *DerivationError
}

// Stored reports whether the article survived the SeoArticle step
func (r *IngestResult) Stored() bool {
	return r.Err == nil
}

// ingestService is the concrete implementation of IngestService
type ingestService struct {
	repos    *repository.Repositories
	resolver *workspaceResolver
	log      zerolog.Logger
}

// newIngestService creates a new IngestService
func newIngestService(repos *repository.Repositories, resolver *workspaceResolver, log zerolog.Logger) *ingestService {
	return &ingestService{
		repos:    repos,
		resolver: resolver,
		log:      log.With().Str("service", "ingest").Logger(),
	}
}

// ProcessWebhook runs the full pipeline for one webhook delivery.
// Articles are processed strictly sequentially and independently; one
// failing article never aborts its siblings. Exactly one run-level
// audit entry is appended regardless of per-article outcomes.
func (s *ingestService) ProcessWebhook(ctx context.Context, payload *models.WebhookPayload) ([]IngestResult, error) {
	now := time.Now()

	items, err := ingest.Items(payload)
	if err != nil {
		return nil, err
	}

	results := make([]IngestResult, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			s.logRunFailure(ctx, payload, err)
			return nil, fmt.Errorf("webhook run aborted: %w", err)
		}
		article := ingest.NormalizeArticle(item, models.SourceString, now)
		results = append(results, s.processArticle(ctx, article, item, now))
	}

	stored := 0
	for i := range results {
		if results[i].Stored() {
			stored++
		}
	}

	// Run-level audit entry; the run reports success independent of
	// individual article failures
	rawPayload, _ := json.Marshal(payload)
	entry := &models.WebhookLog{
		Source:         models.SourceString,
		EventType:      models.EventArticleReceived,
		Payload:        rawPayload,
		ProcessedCount: stored,
		Status:         models.LogStatusSuccess,
	}
	if err := s.repos.WebhookLog.Insert(ctx, entry); err != nil {
		s.log.Error().Err(err).Msg("Failed to write run-level audit entry")
	}

	s.log.Info().
		Int("received", len(items)).
		Int("stored", stored).
		Msg("Webhook run completed")

	return results, nil
}

// processArticle is the per-article failure boundary. raw is the item
// exactly as received, kept for the forensic echo.
func (s *ingestService) processArticle(ctx context.Context, article, raw models.ExternalArticle, now time.Time) IngestResult {
	result := IngestResult{ExternalID: article.ExternalID}

	seoArticle, err := s.storeArticle(ctx, article, raw, now)
	if err != nil {
		// Pre-processing failure: abandon this article, continue batch
		s.log.Error().Err(err).
			Str("external_id", article.ExternalID).
			Str("action", "pre-processing").
			Msg("Failed to store SEO article")
		result.Err = &StoreError{ExternalID: article.ExternalID, Err: err}
		return result
	}
	result.SeoArticle = seoArticle

	post, derr := s.deriveBlogPost(ctx, seoArticle)
	if derr != nil {
		s.logDerivationFailure(ctx, derr)
		result.DerivationErr = derr
		return result
	}
	result.BlogPost = post

	if err := assignSeoCategory(ctx, s.repos, post); err != nil {
		s.log.Warn().Err(err).
			Str("post_id", post.ID).
			Msg("Failed to assign SEO category")
	}

	s.log.Info().
		Str("external_id", article.ExternalID).
		Str("seo_article_id", seoArticle.ID).
		Str("post_id", post.ID).
		Msg("Article processed")

	return result
}

// storeArticle upserts the canonical record keyed by external_id
func (s *ingestService) storeArticle(ctx context.Context, article, raw models.ExternalArticle, now time.Time) (*models.SeoArticle, error) {
	// Echo the item as received, before any fallback rules ran
	metadata, _ := json.Marshal(map[string]models.ExternalArticle{"original_payload": raw})

	record := &models.SeoArticle{
		ExternalID:        article.ExternalID,
		Title:             article.Title,
		Content:           article.Content,
		ContentHTML:       article.ContentHTML,
		MetaDescription:   article.MetaDescription,
		Keywords:          article.Keywords,
		URL:               article.URL,
		PublishedAt:       ingest.ParseTime(article.PublishedAt),
		Status:            article.Status,
		SeoScore:          article.SeoScore,
		Source:            models.SourceString,
		WebhookReceivedAt: now,
		Metadata:          metadata,
	}

	return s.repos.SeoArticle.Upsert(ctx, record)
}

// deriveBlogPost maps a stored article into a draft post. Webhook-path
// posts always start as drafts for human review, whatever the inbound
// status said, and leave slug generation to the store.
func (s *ingestService) deriveBlogPost(ctx context.Context, seoArticle *models.SeoArticle) (*models.BlogPost, *DerivationError) {
	workspace, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, &DerivationError{
			ExternalID:   seoArticle.ExternalID,
			SeoArticleID: seoArticle.ID,
			Stage:        "workspace",
			Err:          err,
		}
	}

	excerpt := seoArticle.MetaDescription
	if excerpt == "" {
		excerpt = models.ExcerptFallback
	}

	post := &models.BlogPost{
		Title:           seoArticle.Title,
		Slug:            "", // store-generated
		Excerpt:         excerpt,
		Content:         seoArticle.Content,
		MetaDescription: seoArticle.MetaDescription,
		Keywords:        seoArticle.Keywords,
		Status:          models.StatusDraft,
		AuthorID:        workspace.OwnerID,
		WorkspaceID:     workspace.ID,
		SeoArticleID:    seoArticle.ID,
	}

	created, err := s.repos.BlogPost.UpsertBySeoArticleID(ctx, post)
	if err != nil {
		return nil, &DerivationError{
			ExternalID:   seoArticle.ExternalID,
			SeoArticleID: seoArticle.ID,
			Stage:        "blog_post",
			Err:          err,
		}
	}

	return created, nil
}

// logRunFailure appends a status=error audit entry when the run itself
// dies. The entry is written on a detached context so an aborted
// request still leaves its trace.
func (s *ingestService) logRunFailure(ctx context.Context, payload *models.WebhookPayload, runErr error) {
	s.log.Error().Err(runErr).Msg("Webhook run failed")

	rawPayload, _ := json.Marshal(payload)
	entry := &models.WebhookLog{
		Source:       models.SourceString,
		EventType:    models.EventArticleReceived,
		Payload:      rawPayload,
		Status:       models.LogStatusError,
		ErrorMessage: runErr.Error(),
	}
	if err := s.repos.WebhookLog.Insert(context.WithoutCancel(ctx), entry); err != nil {
		s.log.Error().Err(err).Msg("Failed to write run failure audit entry")
	}
}

// logDerivationFailure appends the distinct audit entry for a failed
// derivation so the successful SeoArticle write is not masked by it
func (s *ingestService) logDerivationFailure(ctx context.Context, derr *DerivationError) {
	s.log.Error().Err(derr.Err).
		Str("external_id", derr.ExternalID).
		Str("seo_article_id", derr.SeoArticleID).
		Str("stage", derr.Stage).
		Msg("Blog post derivation failed")

	entry := &models.WebhookLog{
		Source:            models.SourceString,
		EventType:         models.EventBlogPostFailed,
		Status:            models.LogStatusError,
		ErrorMessage:      derr.Error(),
		ArticleExternalID: derr.ExternalID,
		SeoArticleID:      derr.SeoArticleID,
	}
	if err := s.repos.WebhookLog.Insert(ctx, entry); err != nil {
		s.log.Error().Err(err).Msg("Failed to write derivation failure audit entry")
	}
}
