package project

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/application/project/usecases"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/utils"
)

type ProjectHandler struct {
	listProjectsUC  usecases.ListProjectsExecutor
	getProjectUC    usecases.GetProjectExecutor
	createProjectUC usecases.CreateProjectExecutor
	updateProjectUC usecases.UpdateProjectExecutor
	deleteProjectUC usecases.DeleteProjectExecutor
	archiveUC       usecases.ArchiveProjectExecutor
	unarchiveUC     usecases.ArchiveProjectExecutor
	subscribeUC     usecases.ProjectSubscriptionExecutor
	unsubscribeUC   usecases.ProjectSubscriptionExecutor
	markReadUC      usecases.MarkProjectReadExecutor
	logger          logger.Interface
}

func NewProjectHandler(
	listProjectsUC usecases.ListProjectsExecutor,
	getProjectUC usecases.GetProjectExecutor,
	createProjectUC usecases.CreateProjectExecutor,
	updateProjectUC usecases.UpdateProjectExecutor,
	deleteProjectUC usecases.DeleteProjectExecutor,
	archiveUC usecases.ArchiveProjectExecutor,
	unarchiveUC usecases.ArchiveProjectExecutor,
	subscribeUC usecases.ProjectSubscriptionExecutor,
	unsubscribeUC usecases.ProjectSubscriptionExecutor,
	markReadUC usecases.MarkProjectReadExecutor,
) *ProjectHandler {
	return &ProjectHandler{
		listProjectsUC:  listProjectsUC,
		getProjectUC:    getProjectUC,
		createProjectUC: createProjectUC,
		updateProjectUC: updateProjectUC,
		deleteProjectUC: deleteProjectUC,
		archiveUC:       archiveUC,
		unarchiveUC:     unarchiveUC,
		subscribeUC:     subscribeUC,
		unsubscribeUC:   unsubscribeUC,
		markReadUC:      markReadUC,
		logger:          logger.NewLogger(),
	}
}

// ListProjects handles GET /projects. ?archived=true lists archived projects.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	query := usecases.ListProjectsQuery{
		ActorID:  utils.GetActorID(c),
		Archived: c.Query("archived") == "true",
	}

	projects, err := h.listProjectsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", projects)
}

// GetProject handles GET /projects/:project
func (h *ProjectHandler) GetProject(c *gin.Context) {
	query := usecases.GetProjectQuery{ProjectName: c.Param("project"), ActorID: utils.GetActorID(c)}

	project, err := h.getProjectUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", project)
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create project", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createProjectUC.Execute(c.Request.Context(), req.ToCommand(utils.GetActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result.Project, "Project created successfully")
}

// UpdateProject handles PATCH /projects/:project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req UpdateProjectRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update project", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateProjectUC.Execute(c.Request.Context(), req.ToCommand(c.Param("project"), utils.GetActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, "Project updated successfully", "Project not modified", result.Project)
}

// DeleteProject handles DELETE /projects/:project
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	cmd := usecases.DeleteProjectCommand{ProjectName: c.Param("project"), ActorID: utils.GetActorID(c)}
	if err := h.deleteProjectUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// ArchiveProject handles POST /projects/:project/archive
func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	h.changeArchived(c, h.archiveUC, "Project archived successfully")
}

// UnarchiveProject handles POST /projects/:project/unarchive
func (h *ProjectHandler) UnarchiveProject(c *gin.Context) {
	h.changeArchived(c, h.unarchiveUC, "Project unarchived successfully")
}

func (h *ProjectHandler) changeArchived(c *gin.Context, uc usecases.ArchiveProjectExecutor, msg string) {
	cmd := usecases.ArchiveProjectCommand{ProjectName: c.Param("project"), ActorID: utils.GetActorID(c)}

	project, err := uc.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, msg, project)
}

// Subscribe handles POST /projects/:project/subscription
func (h *ProjectHandler) Subscribe(c *gin.Context) {
	h.changeSubscription(c, h.subscribeUC, "Subscribed to project", "Already subscribed")
}

// Unsubscribe handles DELETE /projects/:project/subscription
func (h *ProjectHandler) Unsubscribe(c *gin.Context) {
	h.changeSubscription(c, h.unsubscribeUC, "Unsubscribed from project", "Not subscribed")
}

func (h *ProjectHandler) changeSubscription(c *gin.Context, uc usecases.ProjectSubscriptionExecutor, successMsg, infoMsg string) {
	cmd := usecases.ProjectSubscriptionCommand{ProjectName: c.Param("project"), ActorID: utils.GetActorID(c)}

	result, err := uc.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, successMsg, infoMsg, SubscriptionResponse{Subscribed: result.Subscribed})
}

// MarkAllRead handles POST /projects/:project/read
func (h *ProjectHandler) MarkAllRead(c *gin.Context) {
	cmd := usecases.MarkProjectReadCommand{ProjectName: c.Param("project"), ActorID: utils.GetActorID(c)}
	if err := h.markReadUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "All issues marked as read", nil)
}
