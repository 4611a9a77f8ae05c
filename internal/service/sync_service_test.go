package service

import (
	"context"
	"errors"
	"testing"

	"github.com/article-ingest-api/internal/mocks"
	"github.com/article-ingest-api/internal/models"
	"github.com/article-ingest-api/internal/repository"
	"github.com/rs/zerolog"
)

type syncFixture struct {
	svc        *syncService
	seo        *mocks.MockSeoArticleRepository
	posts      *mocks.MockBlogPostRepository
	categories *mocks.MockCategoryRepository
	workspaces *mocks.MockWorkspaceRepository
	profiles   *mocks.MockProfileRepository
	logs       *mocks.MockWebhookLogRepository
}

func newSyncFixture(workspaceID string) *syncFixture {
	f := &syncFixture{
		seo:        mocks.NewMockSeoArticleRepository(),
		posts:      mocks.NewMockBlogPostRepository(),
		categories: mocks.NewMockCategoryRepository(),
		workspaces: mocks.NewMockWorkspaceRepository(),
		profiles:   mocks.NewMockProfileRepository(),
		logs:       mocks.NewMockWebhookLogRepository(),
	}

	repos := &repository.Repositories{
		SeoArticle: f.seo,
		BlogPost:   f.posts,
		Category:   f.categories,
		Workspace:  f.workspaces,
		Profile:    f.profiles,
		WebhookLog: f.logs,
	}

	log := zerolog.Nop()
	resolver := newWorkspaceResolver(f.workspaces, f.profiles, workspaceID, log)
	f.svc = newSyncService(repos, resolver, log)
	return f
}

func (f *syncFixture) withWorkspace() *models.Workspace {
	workspace := &models.Workspace{ID: "ws-main", Name: "Main", OwnerID: "owner-1"}
	f.workspaces.Workspaces = append(f.workspaces.Workspaces, workspace)
	return workspace
}

func TestSyncOutrank_PublishesAllArticles(t *testing.T) {
	f := newSyncFixture("")
	f.withWorkspace()

	resp, err := f.svc.SyncOutrank(context.Background())
	if err != nil {
		t.Fatalf("SyncOutrank failed: %v", err)
	}

	if resp.ProcessedArticles != len(outrankArticles) {
		t.Errorf("Expected %d processed articles, got %d", len(outrankArticles), resp.ProcessedArticles)
	}
	if resp.Errors != 0 {
		t.Errorf("Expected no errors, got %d", resp.Errors)
	}
	if resp.Message != "Articles synced successfully" {
		t.Errorf("Unexpected message %q", resp.Message)
	}

	if len(f.seo.Articles) != len(outrankArticles) {
		t.Errorf("Expected %d SEO articles, got %d", len(outrankArticles), len(f.seo.Articles))
	}

	// Sync-path posts are published immediately
	for _, article := range outrankArticles {
		stored := f.seo.Articles[article.ID]
		if stored == nil {
			t.Fatalf("Missing SEO article %s", article.ID)
		}
		if stored.Status != models.StatusPublished {
			t.Errorf("Expected published SEO article, got %q", stored.Status)
		}
		if stored.Source != models.SourceOutrank {
			t.Errorf("Expected source %q, got %q", models.SourceOutrank, stored.Source)
		}

		post, _ := f.posts.GetBySeoArticleID(context.Background(), stored.ID)
		if post == nil {
			t.Fatalf("Missing blog post for %s", article.ID)
		}
		if post.Status != models.StatusPublished {
			t.Errorf("Expected published post, got %q", post.Status)
		}
		if post.PublishedAt == nil {
			t.Error("Expected published_at to be set on sync-path posts")
		}
		if post.Content != article.ContentHTML {
			t.Error("Expected HTML content on the blog post")
		}
	}

	// One run-level audit entry without a payload echo
	runEntries := f.logs.EntriesByEvent(models.EventArticlesSynced)
	if len(runEntries) != 1 {
		t.Fatalf("Expected 1 run entry, got %d", len(runEntries))
	}
	if runEntries[0].ProcessedCount != len(outrankArticles) {
		t.Errorf("Expected processed_count %d, got %d", len(outrankArticles), runEntries[0].ProcessedCount)
	}
	if len(runEntries[0].Payload) != 0 {
		t.Error("Expected no payload echo on sync run entries")
	}

	if len(f.categories.Associations) != len(outrankArticles) {
		t.Errorf("Expected %d category associations, got %d", len(outrankArticles), len(f.categories.Associations))
	}
}

func TestSyncOutrank_NoWorkspaceIsFatal(t *testing.T) {
	f := newSyncFixture("")

	_, err := f.svc.SyncOutrank(context.Background())
	if !errors.Is(err, ErrNoWorkspace) {
		t.Fatalf("Expected ErrNoWorkspace, got %v", err)
	}

	if len(f.seo.Articles) != 0 {
		t.Error("No articles may be written without a workspace")
	}
	if len(f.logs.Entries) != 0 {
		t.Error("No audit entries expected for an aborted run")
	}
}

func TestSyncOutrank_RerunIsIdempotent(t *testing.T) {
	f := newSyncFixture("")
	f.withWorkspace()

	if _, err := f.svc.SyncOutrank(context.Background()); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	resp, err := f.svc.SyncOutrank(context.Background())
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if resp.ProcessedArticles != len(outrankArticles) {
		t.Errorf("Expected %d processed on rerun, got %d", len(outrankArticles), resp.ProcessedArticles)
	}
	if len(f.seo.Articles) != len(outrankArticles) {
		t.Errorf("Expected %d SEO articles after rerun, got %d", len(outrankArticles), len(f.seo.Articles))
	}
	// Slug reuse keeps the rerun hitting the same rows
	if len(f.posts.BySlug) != len(outrankArticles) {
		t.Errorf("Expected %d posts after rerun, got %d", len(outrankArticles), len(f.posts.BySlug))
	}
}

func TestSyncOutrank_ArticleStoreFailureIsIsolated(t *testing.T) {
	f := newSyncFixture("")
	f.withWorkspace()
	f.seo.FailExternalIDs[outrankArticles[0].ID] = true

	resp, err := f.svc.SyncOutrank(context.Background())
	if err != nil {
		t.Fatalf("SyncOutrank failed: %v", err)
	}

	if resp.ProcessedArticles != len(outrankArticles)-1 {
		t.Errorf("Expected %d processed, got %d", len(outrankArticles)-1, resp.ProcessedArticles)
	}
	if resp.Errors != 1 {
		t.Fatalf("Expected 1 error, got %d", resp.Errors)
	}
	if resp.Details[0].ArticleID != outrankArticles[0].ID {
		t.Errorf("Unexpected failing article %q", resp.Details[0].ArticleID)
	}
}

func TestSyncOutrank_BlogPostFailureStillCountsArticle(t *testing.T) {
	f := newSyncFixture("")
	f.withWorkspace()
	f.posts.UpsertError = errors.New("posts table unavailable")

	resp, err := f.svc.SyncOutrank(context.Background())
	if err != nil {
		t.Fatalf("SyncOutrank failed: %v", err)
	}

	// SEO article writes succeeded, so the articles stay in the
	// processed set even though the posts failed
	if resp.ProcessedArticles != len(outrankArticles) {
		t.Errorf("Expected %d processed, got %d", len(outrankArticles), resp.ProcessedArticles)
	}
	if resp.Errors != len(outrankArticles) {
		t.Errorf("Expected %d errors, got %d", len(outrankArticles), resp.Errors)
	}

	failEntries := f.logs.EntriesByEvent(models.EventBlogPostFailed)
	if len(failEntries) != len(outrankArticles) {
		t.Fatalf("Expected %d failure entries, got %d", len(outrankArticles), len(failEntries))
	}
	if failEntries[0].ArticleExternalID == "" || failEntries[0].SeoArticleID == "" {
		t.Errorf("Failure entry missing article identifiers: %+v", failEntries[0])
	}
}

func TestSyncOutrank_WorkspaceBootstrapFromProfile(t *testing.T) {
	f := newSyncFixture("")
	f.profiles.Profiles = append(f.profiles.Profiles, &models.Profile{ID: "prof-1", Email: "owner@example.com"})

	resp, err := f.svc.SyncOutrank(context.Background())
	if err != nil {
		t.Fatalf("SyncOutrank failed: %v", err)
	}

	if f.workspaces.CreateCalls != 1 {
		t.Errorf("Expected workspace bootstrap, got %d creates", f.workspaces.CreateCalls)
	}
	if resp.ProcessedArticles != len(outrankArticles) {
		t.Errorf("Expected %d processed, got %d", len(outrankArticles), resp.ProcessedArticles)
	}
}

func TestContentExcerpt(t *testing.T) {
	if got := contentExcerpt("short"); got != "short" {
		t.Errorf("Expected short content unchanged, got %q", got)
	}

	long := make([]rune, 0, 400)
	for i := 0; i < 400; i++ {
		long = append(long, 'ä')
	}
	got := contentExcerpt(string(long))
	if len([]rune(got)) != 160 {
		t.Errorf("Expected 160-rune excerpt, got %d runes", len([]rune(got)))
	}
}
