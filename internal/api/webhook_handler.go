package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/article-ingest-api/internal/config"
	"github.com/article-ingest-api/internal/ingest"
	"github.com/article-ingest-api/internal/models"
	"github.com/article-ingest-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// WebhookHandler handles externally-authored article deliveries
type WebhookHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "webhook").Logger(),
	}
}

// HandleString handles POST /webhooks/string
// Accepts { article: {...} } or { articles: [...] }. Per-article
// failures are audit events, not response failures: the run reports
// success with the count of articles that were stored.
func (h *WebhookHandler) HandleString(c *gin.Context) {
	ctx := c.Request.Context()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.Ingest.MaxBodyBytes)

	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	results, err := h.services.Ingest.ProcessWebhook(ctx, &payload)
	if err != nil {
		if errors.Is(err, ingest.ErrMissingArticle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("Webhook run failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}

	processed := 0
	for i := range results {
		if results[i].Stored() {
			processed++
		}
	}

	c.JSON(http.StatusOK, models.WebhookResponse{
		Success:           true,
		ProcessedArticles: processed,
		Message:           fmt.Sprintf("Successfully processed %d articles from String.com", processed),
	})
}
