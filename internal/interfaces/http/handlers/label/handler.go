package label

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/application/label/usecases"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/utils"
)

type LabelHandler struct {
	listLabelsUC  usecases.ListLabelsExecutor
	saveLabelUC   usecases.SaveLabelExecutor
	deleteLabelUC usecases.DeleteLabelExecutor
	logger        logger.Interface
}

func NewLabelHandler(
	listLabelsUC usecases.ListLabelsExecutor,
	saveLabelUC usecases.SaveLabelExecutor,
	deleteLabelUC usecases.DeleteLabelExecutor,
) *LabelHandler {
	return &LabelHandler{
		listLabelsUC:  listLabelsUC,
		saveLabelUC:   saveLabelUC,
		deleteLabelUC: deleteLabelUC,
		logger:        logger.NewLogger(),
	}
}

// ListLabels handles GET /projects/:project/labels
func (h *LabelHandler) ListLabels(c *gin.Context) {
	labels, err := h.listLabelsUC.Execute(c.Request.Context(), usecases.ListLabelsQuery{
		ProjectName: c.Param("project"),
		ActorID:     utils.GetActorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", labels)
}

// CreateLabel handles POST /projects/:project/labels
func (h *LabelHandler) CreateLabel(c *gin.Context) {
	var req SaveLabelRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create label", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.saveLabelUC.Execute(c.Request.Context(), req.ToCommand(c.Param("project"), 0, utils.GetActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result.Label, "Label created successfully")
}

// UpdateLabel handles PUT /projects/:project/labels/:label
func (h *LabelHandler) UpdateLabel(c *gin.Context) {
	labelID, err := utils.ParseUintParam(c, "label", "label")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req SaveLabelRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update label", "label_id", labelID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.saveLabelUC.Execute(c.Request.Context(), req.ToCommand(c.Param("project"), labelID, utils.GetActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, "Label updated successfully", "Label not modified", result.Label)
}

// DeleteLabel handles DELETE /projects/:project/labels/:label
func (h *LabelHandler) DeleteLabel(c *gin.Context) {
	labelID, err := utils.ParseUintParam(c, "label", "label")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err = h.deleteLabelUC.Execute(c.Request.Context(), usecases.DeleteLabelCommand{
		ProjectName: c.Param("project"),
		ActorID:     utils.GetActorID(c),
		LabelID:     labelID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
