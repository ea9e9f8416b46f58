package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"manufacturing_analytics/internal/models"
)

// Request DTO for creating an export. Filter facets ride along in the
// body so saved criteria can be replayed verbatim.
type exportRequest struct {
	Name     string          `json:"name"`
	Format   string          `json:"format" binding:"required"` // csv | json
	Criteria models.Criteria `json:"criteria"`
}

// ExportRequest is an exported model for Swagger docs of the export payload.
type ExportRequest struct {
	// Base file name without extension; a timestamped default is used when empty
	Name string `json:"name" example:"manufacturing_data_20240101"`
	// Export format. Allowed: csv, json
	Format string `json:"format" example:"csv"`
	// Filter criteria applied before serialization
	Criteria models.Criteria `json:"criteria"`
}

const contentDisposition = "Content-Disposition"

// @Summary      Export filtered records
// @Description  Serializes the filtered view as CSV or JSON, records the export and returns the file.
// @Tags         exports
// @Accept       json
// @Produce      octet-stream
// @Param        body  body  ExportRequest  true  "Export payload"
// @Success      200  {file}  file
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/exports [post]
func (h *Handler) postExport(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	entry, data, err := h.services.Export(c.Request.Context(), req.Criteria, req.Name, req.Format)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "export_failed", err, "format", req.Format)
		return
	}

	contentType := "text/csv"
	if entry.Format == models.FormatJSON {
		contentType = "application/json"
	}
	c.Header(contentDisposition, `attachment; filename="`+entry.Name+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// @Summary      Export history
// @Tags         exports
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, exports"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/exports [get]
func (h *Handler) getExports(c *gin.Context) {
	entries, err := h.services.History(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load export history", "export_history_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"exports": entries,
	})
}
