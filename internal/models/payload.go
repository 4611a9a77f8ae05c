package models

// WebhookPayload is the inbound webhook body: a single article or a
// batch. A payload with neither is rejected before any persistence.
type WebhookPayload struct {
	Article  *ExternalArticle  `json:"article,omitempty"`
	Articles []ExternalArticle `json:"articles,omitempty"`
}

// IsEmpty reports whether the payload carries no article data
func (p *WebhookPayload) IsEmpty() bool {
	return p.Article == nil && len(p.Articles) == 0
}

// WebhookResponse is returned on run-level webhook success
type WebhookResponse struct {
	Success           bool   `json:"success"`
	ProcessedArticles int    `json:"processed_articles"`
	Message           string `json:"message"`
}

// SyncedArticleRef identifies one article handled by a sync run
type SyncedArticleRef struct {
	ExternalID string `json:"external_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
}

// SyncFailure records a per-article sync error for the response body
type SyncFailure struct {
	ArticleID string `json:"article_id"`
	Error     string `json:"error"`
}

// SyncResponse is returned by the bulk-sync endpoint
type SyncResponse struct {
	Message           string             `json:"message"`
	ProcessedArticles int                `json:"processed_articles"`
	Errors            int                `json:"errors"`
	Articles          []SyncedArticleRef `json:"articles"`
	Details           []SyncFailure      `json:"details,omitempty"`
}
