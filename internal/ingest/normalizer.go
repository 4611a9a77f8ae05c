package ingest

import (
	"errors"
	"time"

	"github.com/article-ingest-api/internal/models"
)

// ErrMissingArticle is returned when a payload carries neither an
// article nor an articles array
var ErrMissingArticle = errors.New("invalid payload: missing article data")

// Items extracts the raw article list from a payload, exactly as
// received: one item per input, no drops, no fallbacks. Callers
// normalize each item with NormalizeArticle and keep the raw value
// for the audit echo. Structurally odd items are passed through for
// the per-item write step to reject inside its own failure boundary.
func Items(payload *models.WebhookPayload) ([]models.ExternalArticle, error) {
	if payload == nil || payload.IsEmpty() {
		return nil, ErrMissingArticle
	}
	if len(payload.Articles) > 0 {
		return payload.Articles, nil
	}
	return []models.ExternalArticle{*payload.Article}, nil
}

// NormalizeArticle applies the optional-field fallback rules to a
// single article
func NormalizeArticle(a models.ExternalArticle, source string, now time.Time) models.ExternalArticle {
	// Rendered HTML wins over raw content; absence of both is not an
	// error at this stage
	if a.ContentHTML != "" {
		a.Content = a.ContentHTML
	}

	if a.Status == "" {
		a.Status = models.StatusDraft
	}

	// Keywords win over tags when both are present
	if len(a.Keywords) == 0 {
		a.Keywords = a.Tags
	}
	if a.Keywords == nil {
		a.Keywords = []string{}
	}

	if a.ExternalID == "" {
		a.ExternalID = SynthesizeExternalID(source, a.Title, now)
	}

	return a
}
