package milestone

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/application/milestone/usecases"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/utils"
)

type MilestoneHandler struct {
	listMilestonesUC  usecases.ListMilestonesExecutor
	createMilestoneUC usecases.CreateMilestoneExecutor
	editMilestoneUC   usecases.EditMilestoneExecutor
	closeMilestoneUC  usecases.ChangeMilestoneStateExecutor
	reopenMilestoneUC usecases.ChangeMilestoneStateExecutor
	deleteMilestoneUC usecases.DeleteMilestoneExecutor
	logger            logger.Interface
}

func NewMilestoneHandler(
	listMilestonesUC usecases.ListMilestonesExecutor,
	createMilestoneUC usecases.CreateMilestoneExecutor,
	editMilestoneUC usecases.EditMilestoneExecutor,
	closeMilestoneUC usecases.ChangeMilestoneStateExecutor,
	reopenMilestoneUC usecases.ChangeMilestoneStateExecutor,
	deleteMilestoneUC usecases.DeleteMilestoneExecutor,
) *MilestoneHandler {
	return &MilestoneHandler{
		listMilestonesUC:  listMilestonesUC,
		createMilestoneUC: createMilestoneUC,
		editMilestoneUC:   editMilestoneUC,
		closeMilestoneUC:  closeMilestoneUC,
		reopenMilestoneUC: reopenMilestoneUC,
		deleteMilestoneUC: deleteMilestoneUC,
		logger:            logger.NewLogger(),
	}
}

func milestoneRef(c *gin.Context) usecases.MilestoneRef {
	return usecases.MilestoneRef{ProjectName: c.Param("project"), MilestoneName: c.Param("milestone")}
}

// ListMilestones handles GET /projects/:project/milestones?filter=open|closed|all
func (h *MilestoneHandler) ListMilestones(c *gin.Context) {
	milestones, err := h.listMilestonesUC.Execute(c.Request.Context(), usecases.ListMilestonesQuery{
		ProjectName: c.Param("project"),
		ActorID:     utils.GetActorID(c),
		Filter:      c.Query("filter"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", milestones)
}

// CreateMilestone handles POST /projects/:project/milestones
func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	var req CreateMilestoneRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create milestone", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createMilestoneUC.Execute(c.Request.Context(), req.ToCommand(c.Param("project"), utils.GetActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Milestone created successfully")
}

// EditMilestone handles PUT /projects/:project/milestones/:milestone
func (h *MilestoneHandler) EditMilestone(c *gin.Context) {
	var req EditMilestoneRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for edit milestone", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.editMilestoneUC.Execute(c.Request.Context(), req.ToCommand(milestoneRef(c), utils.GetActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, "Milestone updated successfully", "Milestone not modified", result.Milestone)
}

// CloseMilestone handles POST /projects/:project/milestones/:milestone/close
func (h *MilestoneHandler) CloseMilestone(c *gin.Context) {
	h.changeState(c, h.closeMilestoneUC, "Milestone closed")
}

// ReopenMilestone handles POST /projects/:project/milestones/:milestone/reopen
func (h *MilestoneHandler) ReopenMilestone(c *gin.Context) {
	h.changeState(c, h.reopenMilestoneUC, "Milestone reopened")
}

func (h *MilestoneHandler) changeState(c *gin.Context, uc usecases.ChangeMilestoneStateExecutor, msg string) {
	result, err := uc.Execute(c.Request.Context(), usecases.ChangeMilestoneStateCommand{
		MilestoneRef: milestoneRef(c),
		ActorID:      utils.GetActorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, msg, result)
}

// DeleteMilestone handles DELETE /projects/:project/milestones/:milestone
func (h *MilestoneHandler) DeleteMilestone(c *gin.Context) {
	err := h.deleteMilestoneUC.Execute(c.Request.Context(), usecases.DeleteMilestoneCommand{
		MilestoneRef: milestoneRef(c),
		ActorID:      utils.GetActorID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
