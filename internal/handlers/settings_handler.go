package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minimart-pos/internal/models"
	"minimart-pos/internal/repository"
)

// SettingsHandler reads and patches the shop settings.
type SettingsHandler struct {
	settings *repository.SettingsRepository
	log      *zap.Logger
}

func NewSettingsHandler(settings *repository.SettingsRepository, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, log: log}
}

// --- GET: Current settings (defaults filled in) ---
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		h.log.Error("failed to read settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// --- PUT: Partial settings update ---
// Only the fields present in the body change; the full record is persisted.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if patch.Language != nil && *patch.Language != "ta" && *patch.Language != "en" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language must be ta or en"})
		return
	}

	settings, err := h.settings.Set(c.Request.Context(), patch)
	if err != nil {
		h.log.Error("failed to update settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}
