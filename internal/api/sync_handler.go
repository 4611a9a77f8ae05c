package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/article-ingest-api/internal/config"
	"github.com/article-ingest-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SyncHandler handles the trusted bulk-sync endpoint
type SyncHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *SyncHandler {
	return &SyncHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "sync").Logger(),
	}
}

// SyncOutrank handles POST /sync/outrank
func (h *SyncHandler) SyncOutrank(c *gin.Context) {
	ctx := c.Request.Context()

	if token := h.cfg.Ingest.SyncAccessToken; token != "" {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != token {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid access token"})
			return
		}
	}

	response, err := h.services.Sync.SyncOutrank(ctx)
	if err != nil {
		if errors.Is(err, service.ErrNoWorkspace) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("Sync run failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
