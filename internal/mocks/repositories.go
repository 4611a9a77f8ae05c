package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/article-ingest-api/internal/ingest"
	"github.com/article-ingest-api/internal/models"
)

// MockSeoArticleRepository is a mock implementation of SeoArticleRepository
type MockSeoArticleRepository struct {
	Articles    map[string]*models.SeoArticle // keyed by external_id
	UpsertError error
	// FailExternalIDs makes Upsert fail for specific articles only
	FailExternalIDs map[string]bool
	UpsertCalls     int
	nextID          int
}

func NewMockSeoArticleRepository() *MockSeoArticleRepository {
	return &MockSeoArticleRepository{
		Articles:        make(map[string]*models.SeoArticle),
		FailExternalIDs: make(map[string]bool),
	}
}

func (m *MockSeoArticleRepository) Upsert(ctx context.Context, article *models.SeoArticle) (*models.SeoArticle, error) {
	m.UpsertCalls++
	if m.UpsertError != nil {
		return nil, m.UpsertError
	}
	if m.FailExternalIDs[article.ExternalID] {
		return nil, fmt.Errorf("store rejected article %s", article.ExternalID)
	}

	now := time.Now()
	persisted := *article
	if existing, ok := m.Articles[article.ExternalID]; ok {
		persisted.ID = existing.ID
		persisted.CreatedAt = existing.CreatedAt
	} else {
		m.nextID++
		persisted.ID = fmt.Sprintf("seo-%d", m.nextID)
		persisted.CreatedAt = now
	}
	persisted.UpdatedAt = now
	m.Articles[article.ExternalID] = &persisted
	return &persisted, nil
}

func (m *MockSeoArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

// MockBlogPostRepository is a mock implementation of BlogPostRepository
type MockBlogPostRepository struct {
	BySeoArticleID map[string]*models.BlogPost
	BySlug         map[string]*models.BlogPost // keyed by workspace_id + "/" + slug
	UpsertError    error
	SlugError      error
	UpsertCalls    int
	nextID         int
}

func NewMockBlogPostRepository() *MockBlogPostRepository {
	return &MockBlogPostRepository{
		BySeoArticleID: make(map[string]*models.BlogPost),
		BySlug:         make(map[string]*models.BlogPost),
	}
}

func (m *MockBlogPostRepository) UpsertBySeoArticleID(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	m.UpsertCalls++
	if m.UpsertError != nil {
		return nil, m.UpsertError
	}

	now := time.Now()
	persisted := *post
	if existing, ok := m.BySeoArticleID[post.SeoArticleID]; ok {
		persisted.ID = existing.ID
		persisted.Slug = existing.Slug
		persisted.CreatedAt = existing.CreatedAt
	} else {
		m.nextID++
		persisted.ID = fmt.Sprintf("post-%d", m.nextID)
		persisted.CreatedAt = now
		if persisted.Slug == "" {
			// Emulates the store's slug trigger
			persisted.Slug = m.uniqueSlug(post.Title, post.WorkspaceID)
		}
	}
	persisted.UpdatedAt = now
	m.BySeoArticleID[persisted.SeoArticleID] = &persisted
	m.BySlug[persisted.WorkspaceID+"/"+persisted.Slug] = &persisted
	return &persisted, nil
}

func (m *MockBlogPostRepository) UpsertBySlug(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	m.UpsertCalls++
	if m.UpsertError != nil {
		return nil, m.UpsertError
	}

	now := time.Now()
	persisted := *post
	key := post.WorkspaceID + "/" + post.Slug
	if existing, ok := m.BySlug[key]; ok {
		persisted.ID = existing.ID
		persisted.CreatedAt = existing.CreatedAt
	} else {
		m.nextID++
		persisted.ID = fmt.Sprintf("post-%d", m.nextID)
		persisted.CreatedAt = now
	}
	persisted.UpdatedAt = now
	m.BySlug[key] = &persisted
	if persisted.SeoArticleID != "" {
		m.BySeoArticleID[persisted.SeoArticleID] = &persisted
	}
	return &persisted, nil
}

func (m *MockBlogPostRepository) GetBySeoArticleID(ctx context.Context, seoArticleID string) (*models.BlogPost, error) {
	return m.BySeoArticleID[seoArticleID], nil
}

func (m *MockBlogPostRepository) GenerateUniqueSlug(ctx context.Context, title, workspaceID string) (string, error) {
	if m.SlugError != nil {
		return "", m.SlugError
	}
	return m.uniqueSlug(title, workspaceID), nil
}

func (m *MockBlogPostRepository) uniqueSlug(title, workspaceID string) string {
	base := ingest.Slugify(title)
	if base == "" {
		base = "post"
	}
	candidate := base
	for counter := 2; ; counter++ {
		if _, taken := m.BySlug[workspaceID+"/"+candidate]; !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (m *MockBlogPostRepository) Count(ctx context.Context) (int, error) {
	return len(m.BySlug), nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	Categories   map[string]*models.BlogCategory // keyed by slug + "/" + workspace_id
	Associations map[string]bool                 // keyed by post_id + "/" + category_id
	CreateError  error
	AssignError  error
	CreateCalls  int
	AssignCalls  int
	nextID       int
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories:   make(map[string]*models.BlogCategory),
		Associations: make(map[string]bool),
	}
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug, workspaceID string) (*models.BlogCategory, error) {
	return m.Categories[slug+"/"+workspaceID], nil
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.BlogCategory) error {
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	m.nextID++
	category.ID = fmt.Sprintf("cat-%d", m.nextID)
	category.CreatedAt = time.Now()
	m.Categories[category.Slug+"/"+category.WorkspaceID] = category
	return nil
}

func (m *MockCategoryRepository) Assign(ctx context.Context, postID, categoryID string) error {
	m.AssignCalls++
	if m.AssignError != nil {
		return m.AssignError
	}
	// Duplicate association is a no-op
	m.Associations[postID+"/"+categoryID] = true
	return nil
}

// MockWorkspaceRepository is a mock implementation of WorkspaceRepository
type MockWorkspaceRepository struct {
	Workspaces  []*models.Workspace
	CreateError error
	CreateCalls int
	nextID      int
}

func NewMockWorkspaceRepository() *MockWorkspaceRepository {
	return &MockWorkspaceRepository{}
}

func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	for _, w := range m.Workspaces {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, nil
}

func (m *MockWorkspaceRepository) GetFirst(ctx context.Context) (*models.Workspace, error) {
	if len(m.Workspaces) == 0 {
		return nil, nil
	}
	return m.Workspaces[0], nil
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *models.Workspace) error {
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	if workspace.ID == "" {
		m.nextID++
		workspace.ID = fmt.Sprintf("ws-%d", m.nextID)
	}
	workspace.CreatedAt = time.Now()
	m.Workspaces = append(m.Workspaces, workspace)
	return nil
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	Profiles []*models.Profile
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{}
}

func (m *MockProfileRepository) GetFirst(ctx context.Context) (*models.Profile, error) {
	if len(m.Profiles) == 0 {
		return nil, nil
	}
	return m.Profiles[0], nil
}

// MockWebhookLogRepository is a mock implementation of WebhookLogRepository
type MockWebhookLogRepository struct {
	Entries     []*models.WebhookLog
	InsertError error
}

func NewMockWebhookLogRepository() *MockWebhookLogRepository {
	return &MockWebhookLogRepository{}
}

func (m *MockWebhookLogRepository) Insert(ctx context.Context, entry *models.WebhookLog) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

func (m *MockWebhookLogRepository) Count(ctx context.Context) (int, error) {
	return len(m.Entries), nil
}

// EntriesByEvent filters logged entries by event type
func (m *MockWebhookLogRepository) EntriesByEvent(eventType string) []*models.WebhookLog {
	var out []*models.WebhookLog
	for _, e := range m.Entries {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}
