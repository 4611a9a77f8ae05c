package service

import (
	"context"

	"github.com/article-ingest-api/internal/config"
	"github.com/article-ingest-api/internal/models"
	"github.com/article-ingest-api/internal/repository"
	"github.com/rs/zerolog"
)

// IngestService defines the interface for webhook article ingestion
type IngestService interface {
	ProcessWebhook(ctx context.Context, payload *models.WebhookPayload) ([]IngestResult, error)
}

// SyncService defines the interface for bulk article synchronization
type SyncService interface {
	SyncOutrank(ctx context.Context) (*models.SyncResponse, error)
}

// StatsService exposes row counts for the metrics endpoint
type StatsService interface {
	Count(ctx context.Context, resource string) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Ingest IngestService
	Sync   SyncService
	Stats  StatsService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	resolver := newWorkspaceResolver(repos.Workspace, repos.Profile, cfg.Ingest.WorkspaceID, log)

	return &Services{
		Ingest: newIngestService(repos, resolver, log),
		Sync:   newSyncService(repos, resolver, log),
		Stats:  newStatsService(repos),
	}
}

// statsService reads row counts straight from the repositories
type statsService struct {
	repos *repository.Repositories
}

func newStatsService(repos *repository.Repositories) *statsService {
	return &statsService{repos: repos}
}

func (s *statsService) Count(ctx context.Context, resource string) (int, error) {
	switch resource {
	case "seo_articles":
		return s.repos.SeoArticle.Count(ctx)
	case "blog_posts":
		return s.repos.BlogPost.Count(ctx)
	case "webhook_logs":
		return s.repos.WebhookLog.Count(ctx)
	}
	return 0, nil
}
