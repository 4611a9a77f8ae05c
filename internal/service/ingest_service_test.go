package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/article-ingest-api/internal/ingest"
	"github.com/article-ingest-api/internal/mocks"
	"github.com/article-ingest-api/internal/models"
	"github.com/article-ingest-api/internal/repository"
	"github.com/rs/zerolog"
)

type ingestFixture struct {
	svc        *ingestService
	seo        *mocks.MockSeoArticleRepository
	posts      *mocks.MockBlogPostRepository
	categories *mocks.MockCategoryRepository
	workspaces *mocks.MockWorkspaceRepository
	profiles   *mocks.MockProfileRepository
	logs       *mocks.MockWebhookLogRepository
}

func newIngestFixture(workspaceID string) *ingestFixture {
	f := &ingestFixture{
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
	f.svc = newIngestService(repos, resolver, log)
	return f
}

func (f *ingestFixture) withWorkspace() *models.Workspace {
	workspace := &models.Workspace{ID: "ws-main", Name: "Main", OwnerID: "owner-1"}
	f.workspaces.Workspaces = append(f.workspaces.Workspaces, workspace)
	return workspace
}

func TestProcessWebhook_MissingArticleData(t *testing.T) {
	f := newIngestFixture("")
	f.withWorkspace()

	_, err := f.svc.ProcessWebhook(context.Background(), &models.WebhookPayload{})
	if !errors.Is(err, ingest.ErrMissingArticle) {
		t.Fatalf("Expected ErrMissingArticle, got %v", err)
	}

	if len(f.logs.Entries) != 0 {
		t.Errorf("Expected no audit entries for rejected payload, got %d", len(f.logs.Entries))
	}
}

func TestProcessWebhook_SingleArticle(t *testing.T) {
	f := newIngestFixture("")
	f.withWorkspace()

	payload := &models.WebhookPayload{
		Article: &models.ExternalArticle{Title: "Foo", Content: "Bar", Status: "published"},
	}

	results, err := f.svc.ProcessWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("ProcessWebhook failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}

	result := results[0]
	if !result.Stored() {
		t.Fatalf("Expected article to be stored, got err %v", result.Err)
	}

	// Synthesized external id
	if !regexp.MustCompile(`^string-\d+-foo$`).MatchString(result.ExternalID) {
		t.Errorf("Unexpected synthesized external id %q", result.ExternalID)
	}

	if result.SeoArticle.Title != "Foo" {
		t.Errorf("Expected title Foo, got %q", result.SeoArticle.Title)
	}
	if result.SeoArticle.Source != models.SourceString {
		t.Errorf("Expected source %q, got %q", models.SourceString, result.SeoArticle.Source)
	}

	// Webhook path always produces drafts regardless of inbound status
	post := result.BlogPost
	if post == nil {
		t.Fatal("Expected a derived blog post")
	}
	if post.Status != models.StatusDraft {
		t.Errorf("Expected draft post, got %q", post.Status)
	}
	if post.PublishedAt != nil {
		t.Errorf("Expected nil published_at, got %v", post.PublishedAt)
	}
	if post.Excerpt != models.ExcerptFallback {
		t.Errorf("Expected fallback excerpt %q, got %q", models.ExcerptFallback, post.Excerpt)
	}
	if post.AuthorID != "owner-1" || post.WorkspaceID != "ws-main" {
		t.Errorf("Post not attributed to workspace owner: %+v", post)
	}
	if post.Slug == "" {
		t.Error("Expected store-generated slug on persisted post")
	}

	// One run-level audit entry
	runEntries := f.logs.EntriesByEvent(models.EventArticleReceived)
	if len(runEntries) != 1 {
		t.Fatalf("Expected 1 run-level audit entry, got %d", len(runEntries))
	}
	if runEntries[0].ProcessedCount != 1 {
		t.Errorf("Expected processed_count 1, got %d", runEntries[0].ProcessedCount)
	}
	if runEntries[0].Status != models.LogStatusSuccess {
		t.Errorf("Expected success status, got %q", runEntries[0].Status)
	}
	if len(runEntries[0].Payload) == 0 {
		t.Error("Expected run entry to echo the inbound payload")
	}

	// Category bootstrapped and assigned
	if f.categories.CreateCalls != 1 {
		t.Errorf("Expected 1 category create, got %d", f.categories.CreateCalls)
	}
	if len(f.categories.Associations) != 1 {
		t.Errorf("Expected 1 category association, got %d", len(f.categories.Associations))
	}
}

func TestProcessWebhook_ExcerptFromMetaDescription(t *testing.T) {
	f := newIngestFixture("")
	f.withWorkspace()

	payload := &models.WebhookPayload{
		Article: &models.ExternalArticle{
			ExternalID:      "ext-1",
			Title:           "Foo",
			Content:         "Bar",
			MetaDescription: "A useful summary",
		},
	}

	results, err := f.svc.ProcessWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("ProcessWebhook failed: %v", err)
	}
	if results[0].BlogPost.Excerpt != "A useful summary" {
		t.Errorf("Expected meta description excerpt, got %q", results[0].BlogPost.Excerpt)
	}
}

func TestProcessWebhook_MetadataEchoesInboundItem(t *testing.T) {
	f := newIngestFixture("")
	f.withWorkspace()

	// No id, raw content alongside rendered HTML: normalization rewrites
	// both, the stored echo must keep the original values
	payload := &models.WebhookPayload{
		Article: &models.ExternalArticle{
			Title:       "Foo",
			Content:     "raw text",
			ContentHTML: "<p>html</p>",
		},
	}

	results, err := f.svc.ProcessWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("ProcessWebhook failed: %v", err)
	}

	stored := f.seo.Articles[results[0].ExternalID]
	if stored == nil {
		t.Fatal("Expected stored article")
	}
	if stored.Content != "<p>html</p>" {
		t.Errorf("Expected normalized content on the record, got %q", stored.Content)
	}

	var echo map[string]models.ExternalArticle
	if err := json.Unmarshal(stored.Metadata, &echo); err != nil {
		t.Fatalf("Invalid metadata JSON: %v", err)
	}
	original := echo["original_payload"]
	if original.Content != "raw text" {
		t.Errorf("Expected pre-normalization content in the echo, got %q", original.Content)
	}
	if original.ExternalID != "" {
		t.Errorf("Expected no synthesized id in the echo, got %q", original.ExternalID)
	}
	if original.Status != "" {
		t.Errorf("Expected no defaulted status in the echo, got %q", original.Status)
	}
}

func TestProcessWebhook_CancelledContextWritesErrorAudit(t *testing.T) {
	f := newIngestFixture("")
	f.withWorkspace()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payload := &models.WebhookPayload{
		Article: &models.ExternalArticle{ExternalID: "ext-1", Title: "Foo", Content: "Bar"},
	}

	_, err := f.svc.ProcessWebhook(ctx, payload)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context cancellation error, got %v", err)
	}

	if len(f.seo.Articles) != 0 {
		t.Error("No articles may be written after cancellation")
	}

	entries := f.logs.EntriesByEvent(models.EventArticleReceived)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 audit entry for the aborted run, got %d", len(entries))
	}
	if entries[0].Status != models.LogStatusError {
		t.Errorf("Expected error status, got %q", entries[0].Status)
	}
	if entries[0].ErrorMessage == "" {
		t.Error("Expected an error message on the failure entry")
	}
	if len(entries[0].Payload) == 0 {
		t.Error("Expected the failure entry to echo the inbound payload")
	}
}

func TestProcessWebhook_BatchIsolation(t *testing.T) {
	f := newIngestFixture("")
	f.withWorkspace()
	f.seo.FailExternalIDs["bad-2"] = true

	payload := &models.WebhookPayload{
		Articles: []models.ExternalArticle{
			{ExternalID: "ok-1", Title: "One", Content: "x"},
			{ExternalID: "bad-2", Title: "Two", Content: "y"},
			{ExternalID: "ok-3", Title: "Three", Content: "z"},
		},
	}

	results, err := f.svc.ProcessWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("ProcessWebhook failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	if results[0].Err != nil || results[2].Err != nil {
		t.Error("Siblings of a failing article must not fail")
	}
	if results[1].Err == nil {
		t.Error("Expected article #2 to fail the store write")
	}
	var storeErr *StoreError
	if !errors.As(results[1].Err, &storeErr) {
		t.Errorf("Expected StoreError, got %T", results[1].Err)
	}

	// Both survivors got posts
	if results[0].BlogPost == nil || results[2].BlogPost == nil {
		t.Error("Expected blog posts for surviving articles")
	}
	if len(f.seo.Articles) != 2 {
		t.Errorf("Expected 2 stored articles, got %d", len(f.seo.Articles))
	}

	// Run entry counts only articles that survived the SeoArticle step
	runEntries := f.logs.EntriesByEvent(models.EventArticleReceived)
	if len(runEntries) != 1 {
		t.Fatalf("Expected 1 run entry, got %d", len(runEntries))
	}
	if runEntries[0].ProcessedCount != 2 {
		t.Errorf("Expected processed_count 2, got %d", runEntries[0].ProcessedCount)
	}
}

func TestProcessWebhook_DerivationFailureIsDistinctlyAudited(t *testing.T) {
	f := newIngestFixture("")
	f.withWorkspace()
	f.posts.UpsertError = errors.New("posts table unavailable")

	payload := &models.WebhookPayload{
		Article: &models.ExternalArticle{ExternalID: "ext-1", Title: "Foo", Content: "Bar"},
	}

	results, err := f.svc.ProcessWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("ProcessWebhook failed: %v", err)
	}

	result := results[0]
	if !result.Stored() {
		t.Fatal("SeoArticle write must succeed despite derivation failure")
	}
	if result.DerivationErr == nil {
		t.Fatal("Expected a derivation error")
	}
	if result.DerivationErr.Stage != "blog_post" {
		t.Errorf("Expected blog_post stage, got %q", result.DerivationErr.Stage)
	}
	if result.BlogPost != nil {
		t.Error("Expected no blog post on derivation failure")
	}

	// Distinct audit entry carrying the article identifiers
	failEntries := f.logs.EntriesByEvent(models.EventBlogPostFailed)
	if len(failEntries) != 1 {
		t.Fatalf("Expected 1 blog post failure entry, got %d", len(failEntries))
	}
	if failEntries[0].SeoArticleID != result.SeoArticle.ID {
		t.Errorf("Failure entry missing seo article id: %+v", failEntries[0])
	}
	if failEntries[0].ArticleExternalID != "ext-1" {
		t.Errorf("Failure entry missing external id: %+v", failEntries[0])
	}

	// The run itself still reports success and counts the stored article
	runEntries := f.logs.EntriesByEvent(models.EventArticleReceived)
	if len(runEntries) != 1 || runEntries[0].Status != models.LogStatusSuccess {
		t.Error("Expected successful run entry despite derivation failure")
	}
	if runEntries[0].ProcessedCount != 1 {
		t.Errorf("Expected processed_count 1, got %d", runEntries[0].ProcessedCount)
	}

	// No category work without a post
	if f.categories.AssignCalls != 0 {
		t.Errorf("Expected no category assignment, got %d calls", f.categories.AssignCalls)
	}
}

func TestProcessWebhook_ReingestionIsIdempotent(t *testing.T) {
	f := newIngestFixture("")
	f.withWorkspace()

	payload := &models.WebhookPayload{
		Article: &models.ExternalArticle{ExternalID: "ext-1", Title: "Foo", Content: "Bar"},
	}

	first, err := f.svc.ProcessWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, err := f.svc.ProcessWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if len(f.seo.Articles) != 1 {
		t.Errorf("Expected exactly one SeoArticle row, got %d", len(f.seo.Articles))
	}
	if len(f.posts.BySeoArticleID) != 1 {
		t.Errorf("Expected at most one BlogPost row, got %d", len(f.posts.BySeoArticleID))
	}
	if first[0].SeoArticle.ID != second[0].SeoArticle.ID {
		t.Error("Re-ingestion must update the existing row, not create a new one")
	}

	// Category machinery is idempotent too
	if f.categories.CreateCalls != 1 {
		t.Errorf("Expected category created once, got %d", f.categories.CreateCalls)
	}
	if len(f.categories.Associations) != 1 {
		t.Errorf("Expected a single association, got %d", len(f.categories.Associations))
	}
}

func TestProcessWebhook_NoWorkspaceFailsClosed(t *testing.T) {
	// No workspaces, no profiles: derivation must fail, SeoArticle stays
	f := newIngestFixture("")

	payload := &models.WebhookPayload{
		Article: &models.ExternalArticle{ExternalID: "ext-1", Title: "Foo", Content: "Bar"},
	}

	results, err := f.svc.ProcessWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("ProcessWebhook failed: %v", err)
	}

	result := results[0]
	if !result.Stored() {
		t.Fatal("SeoArticle write should succeed without a workspace")
	}
	if result.DerivationErr == nil || result.DerivationErr.Stage != "workspace" {
		t.Fatalf("Expected workspace derivation failure, got %+v", result.DerivationErr)
	}
	if !errors.Is(result.DerivationErr, ErrNoWorkspace) {
		t.Errorf("Expected ErrNoWorkspace cause, got %v", result.DerivationErr.Err)
	}
	if len(f.posts.BySeoArticleID) != 0 {
		t.Error("No orphaned post may be created without a workspace")
	}
}

func TestProcessWebhook_WorkspaceBootstrapFromProfile(t *testing.T) {
	f := newIngestFixture("")
	f.profiles.Profiles = append(f.profiles.Profiles, &models.Profile{ID: "prof-1", Email: "owner@example.com"})

	payload := &models.WebhookPayload{
		Article: &models.ExternalArticle{ExternalID: "ext-1", Title: "Foo", Content: "Bar"},
	}

	results, err := f.svc.ProcessWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("ProcessWebhook failed: %v", err)
	}

	if results[0].BlogPost == nil {
		t.Fatalf("Expected post via bootstrapped workspace, got %+v", results[0].DerivationErr)
	}
	if f.workspaces.CreateCalls != 1 {
		t.Errorf("Expected workspace bootstrap, got %d creates", f.workspaces.CreateCalls)
	}
	if results[0].BlogPost.AuthorID != "prof-1" {
		t.Errorf("Expected profile as author, got %q", results[0].BlogPost.AuthorID)
	}
}

func TestWorkspaceResolver_ConfiguredWorkspaceMustExist(t *testing.T) {
	f := newIngestFixture("ws-configured")
	f.withWorkspace() // a different workspace exists, but the pinned one does not

	payload := &models.WebhookPayload{
		Article: &models.ExternalArticle{ExternalID: "ext-1", Title: "Foo", Content: "Bar"},
	}

	results, err := f.svc.ProcessWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("ProcessWebhook failed: %v", err)
	}
	if results[0].DerivationErr == nil || results[0].DerivationErr.Stage != "workspace" {
		t.Fatalf("Expected workspace failure for missing configured workspace, got %+v", results[0].DerivationErr)
	}
}

func TestWorkspaceResolver_ConfiguredWorkspaceWins(t *testing.T) {
	f := newIngestFixture("ws-pinned")
	f.withWorkspace() // first workspace would otherwise win
	f.workspaces.Workspaces = append(f.workspaces.Workspaces, &models.Workspace{ID: "ws-pinned", Name: "Pinned", OwnerID: "owner-2"})

	payload := &models.WebhookPayload{
		Article: &models.ExternalArticle{ExternalID: "ext-1", Title: "Foo", Content: "Bar"},
	}

	results, err := f.svc.ProcessWebhook(context.Background(), payload)
	if err != nil {
		t.Fatalf("ProcessWebhook failed: %v", err)
	}
	if results[0].BlogPost.WorkspaceID != "ws-pinned" {
		t.Errorf("Expected pinned workspace, got %q", results[0].BlogPost.WorkspaceID)
	}
}
