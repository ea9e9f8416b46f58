package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"manufacturing_analytics/internal/models"
	"manufacturing_analytics/internal/service"
)

type presetRequest struct {
	Name     string          `json:"name" binding:"required"`
	Criteria models.Criteria `json:"criteria"`
}

// PresetRequest is an exported model for Swagger docs of the preset payload.
type PresetRequest struct {
	// Preset name, unique
	Name string `json:"name" example:"night-shift-failures"`
	// Filter criteria to persist
	Criteria models.Criteria `json:"criteria"`
}

// @Summary      Save filter preset
// @Tags         presets
// @Accept       json
// @Produce      json
// @Param        body  body  PresetRequest  true  "Preset payload"
// @Success      201  {object}  models.FilterPreset
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/presets [post]
func (h *Handler) postPreset(c *gin.Context) {
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	preset, err := h.services.Save(c.Request.Context(), req.Name, req.Criteria)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "preset_save_failed", err, "name", req.Name)
		return
	}
	c.JSON(http.StatusCreated, preset)
}

// @Summary      List filter presets
// @Tags         presets
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, presets"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/presets [get]
func (h *Handler) getPresets(c *gin.Context) {
	presets, err := h.services.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load presets", "preset_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(presets),
		"presets": presets,
	})
}

// @Summary      Get filter preset
// @Tags         presets
// @Produce      json
// @Param        id  path  string  true  "Preset id"
// @Success      200  {object}  models.FilterPreset
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/presets/{id} [get]
func (h *Handler) getPreset(c *gin.Context) {
	preset, err := h.services.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load preset", "preset_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, preset)
}

// @Summary      Delete filter preset
// @Tags         presets
// @Produce      json
// @Param        id  path  string  true  "Preset id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/presets/{id} [delete]
func (h *Handler) deletePreset(c *gin.Context) {
	if err := h.services.Presets.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to delete preset", "preset_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
