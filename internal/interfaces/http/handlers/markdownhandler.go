package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/services/markdown"
	"github.com/orris-inc/tracker/internal/shared/utils"
)

// MarkdownHandler renders previews of issue descriptions and comments.
type MarkdownHandler struct {
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewMarkdownHandler(renderer markdown.Renderer, logger logger.Interface) *MarkdownHandler {
	return &MarkdownHandler{renderer: renderer, logger: logger}
}

type PreviewRequest struct {
	Text string `json:"text"`
}

type PreviewResponse struct {
	HTML string `json:"html"`
}

// Preview handles POST /markdown and POST /projects/:project/markdown. Inside a
// project "#12" links to issue 12.
func (h *MarkdownHandler) Preview(c *gin.Context) {
	var req PreviewRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	html, err := h.renderer.Render(req.Text, c.Param("project"))
	if err != nil {
		h.logger.Warnw("markdown preview failed", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("failed to render markdown", err.Error()))
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", PreviewResponse{HTML: html})
}
