package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kanban-board-api/internal/logging"
	"kanban-board-api/internal/models"
	"kanban-board-api/internal/report"
)

// ReportHandler exposes the report engine over HTTP. The assembler is
// constructed once at startup with its storage collaborators injected.
type ReportHandler struct {
	assembler *report.Assembler
}

func NewReportHandler(assembler *report.Assembler) *ReportHandler {
	return &ReportHandler{assembler: assembler}
}

// Generate handles GET /api/report
// Parses the query into a typed report request, runs the report pipeline and
// returns the aggregate payload. Unrecognized sort keys degrade to defaults;
// malformed dates are rejected.
func (h *ReportHandler) Generate(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	actor := report.Actor{
		ID:   userID,
		Role: models.Role(c.GetString("role")),
	}

	req, err := report.ParseReportRequest(c.Request.URL.Query(), actor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.assembler.Generate(c.Request.Context(), req)
	if err != nil {
		logging.Logger.WithError(err).Error("report generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, result)
}
