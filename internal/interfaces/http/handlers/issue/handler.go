package issue

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/application/issue/usecases"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/utils"
)

// IssueHandler serves the issues of a project and everything attached to them.
type IssueHandler struct {
	listIssuesUC     usecases.ListIssuesExecutor
	getIssueUC       usecases.GetIssueExecutor
	createIssueUC    usecases.CreateIssueExecutor
	updateIssueUC    usecases.UpdateIssueExecutor
	deleteIssueUC    usecases.DeleteIssueExecutor
	closeIssueUC     usecases.ChangeIssueStateExecutor
	reopenIssueUC    usecases.ChangeIssueStateExecutor
	addCommentUC     usecases.AddCommentExecutor
	editCommentUC    usecases.EditCommentExecutor
	deleteCommentUC  usecases.DeleteCommentExecutor
	addLabelUC       usecases.IssueLabelExecutor
	removeLabelUC    usecases.IssueLabelExecutor
	setMilestoneUC   usecases.IssueMilestoneExecutor
	unsetMilestoneUC usecases.IssueMilestoneExecutor
	subscribeUC      usecases.IssueSubscriptionExecutor
	unsubscribeUC    usecases.IssueSubscriptionExecutor
	logger           logger.Interface
}

// IssueUseCases groups the executors an IssueHandler dispatches to.
type IssueUseCases struct {
	List           usecases.ListIssuesExecutor
	Get            usecases.GetIssueExecutor
	Create         usecases.CreateIssueExecutor
	Update         usecases.UpdateIssueExecutor
	Delete         usecases.DeleteIssueExecutor
	Close          usecases.ChangeIssueStateExecutor
	Reopen         usecases.ChangeIssueStateExecutor
	AddComment     usecases.AddCommentExecutor
	EditComment    usecases.EditCommentExecutor
	DeleteComment  usecases.DeleteCommentExecutor
	AddLabel       usecases.IssueLabelExecutor
	RemoveLabel    usecases.IssueLabelExecutor
	SetMilestone   usecases.IssueMilestoneExecutor
	UnsetMilestone usecases.IssueMilestoneExecutor
	Subscribe      usecases.IssueSubscriptionExecutor
	Unsubscribe    usecases.IssueSubscriptionExecutor
}

func NewIssueHandler(ucs IssueUseCases) *IssueHandler {
	return &IssueHandler{
		listIssuesUC:     ucs.List,
		getIssueUC:       ucs.Get,
		createIssueUC:    ucs.Create,
		updateIssueUC:    ucs.Update,
		deleteIssueUC:    ucs.Delete,
		closeIssueUC:     ucs.Close,
		reopenIssueUC:    ucs.Reopen,
		addCommentUC:     ucs.AddComment,
		editCommentUC:    ucs.EditComment,
		deleteCommentUC:  ucs.DeleteComment,
		addLabelUC:       ucs.AddLabel,
		removeLabelUC:    ucs.RemoveLabel,
		setMilestoneUC:   ucs.SetMilestone,
		unsetMilestoneUC: ucs.UnsetMilestone,
		subscribeUC:      ucs.Subscribe,
		unsubscribeUC:    ucs.Unsubscribe,
		logger:           logger.NewLogger(),
	}
}

func issueRef(c *gin.Context) (usecases.IssueRef, error) {
	id, err := utils.ParseUintParam(c, "issue", "issue")
	if err != nil {
		return usecases.IssueRef{}, err
	}
	return usecases.IssueRef{ProjectName: c.Param("project"), IssueID: id}, nil
}

// ListIssues handles GET /projects/:project/issues?q=&sort=&page=&page_size=
// @Summary List issues
// @Description Search the issues of a project. q accepts is:open, is:closed, label:, milestone:, author: and free text.
// @Tags Issues
// @Produce json
// @Param project path string true "Project name"
// @Param q query string false "Search query"
// @Param sort query string false "Sort key"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=IssueListResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /projects/{project}/issues [get]
func (h *IssueHandler) ListIssues(c *gin.Context) {
	query := usecases.ListIssuesQuery{
		ProjectName: c.Param("project"),
		ActorID:     utils.GetActorID(c),
		Search:      c.Query("q"),
		Sort:        c.Query("sort"),
	}
	// The page size is the items_per_page setting.
	query.Page = utils.ParsePagination(c, 0).Page

	result, err := h.listIssuesUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", IssueListResponse{
		Items:      result.Issues,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: utils.TotalPages(result.Total, result.PageSize),
		Errors:     result.Errors,
	})
}

// GetIssue handles GET /projects/:project/issues/:issue. Viewing moves the
// actor's read marker.
func (h *IssueHandler) GetIssue(c *gin.Context) {
	ref, err := issueRef(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	detail, err := h.getIssueUC.Execute(c.Request.Context(), usecases.GetIssueQuery{IssueRef: ref, ActorID: utils.GetActorID(c)})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", detail)
}

// CreateIssue handles POST /projects/:project/issues
// @Summary Create issue
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project path string true "Project name"
// @Param request body CreateIssueRequest true "Issue"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /projects/{project}/issues [post]
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	var req CreateIssueRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create issue", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createIssueUC.Execute(c.Request.Context(), req.ToCommand(c.Param("project"), utils.GetActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result.Issue, "Issue created successfully")
}

// UpdateIssue handles PATCH /projects/:project/issues/:issue
func (h *IssueHandler) UpdateIssue(c *gin.Context) {
	ref, err := issueRef(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req UpdateIssueRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update issue", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateIssueUC.Execute(c.Request.Context(), req.ToCommand(ref, utils.GetActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, "Issue updated successfully", "Issue not modified", result.Issue)
}

// DeleteIssue handles DELETE /projects/:project/issues/:issue
func (h *IssueHandler) DeleteIssue(c *gin.Context) {
	ref, err := issueRef(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.deleteIssueUC.Execute(c.Request.Context(), usecases.DeleteIssueCommand{IssueRef: ref, ActorID: utils.GetActorID(c)}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// CloseIssue handles POST /projects/:project/issues/:issue/close
func (h *IssueHandler) CloseIssue(c *gin.Context) {
	h.changeState(c, h.closeIssueUC, "Issue closed")
}

// ReopenIssue handles POST /projects/:project/issues/:issue/reopen
func (h *IssueHandler) ReopenIssue(c *gin.Context) {
	h.changeState(c, h.reopenIssueUC, "Issue reopened")
}

func (h *IssueHandler) changeState(c *gin.Context, uc usecases.ChangeIssueStateExecutor, msg string) {
	ref, err := issueRef(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := uc.Execute(c.Request.Context(), usecases.ChangeIssueStateCommand{IssueRef: ref, ActorID: utils.GetActorID(c)})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, msg, result)
}

// AddComment handles POST /projects/:project/issues/:issue/comments
// @Summary Add comment
// @Description Comment on an issue, optionally closing or reopening it in the same request.
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project path string true "Project name"
// @Param issue path int true "Issue number"
// @Param request body AddCommentRequest true "Comment"
// @Success 201 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /projects/{project}/issues/{issue}/comments [post]
func (h *IssueHandler) AddComment(c *gin.Context) {
	ref, err := issueRef(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req AddCommentRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for add comment", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), usecases.AddCommentCommand{
		IssueRef:    ref,
		ActorID:     utils.GetActorID(c),
		Body:        req.Body,
		ToggleState: req.ToggleState,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Comment added successfully")
}

// EditComment handles PATCH /projects/:project/issues/:issue/comments/:event
func (h *IssueHandler) EditComment(c *gin.Context) {
	ref, err := issueRef(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	eventID, err := utils.ParseUintParam(c, "event", "comment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req EditCommentRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for edit comment", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.editCommentUC.Execute(c.Request.Context(), usecases.EditCommentCommand{
		IssueRef: ref,
		EventID:  eventID,
		ActorID:  utils.GetActorID(c),
		Body:     req.Body,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, "Comment updated successfully", "Comment not modified", result.Comment)
}

// DeleteComment handles DELETE /projects/:project/issues/:issue/comments/:event
func (h *IssueHandler) DeleteComment(c *gin.Context) {
	ref, err := issueRef(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	eventID, err := utils.ParseUintParam(c, "event", "comment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.DeleteCommentCommand{IssueRef: ref, EventID: eventID, ActorID: utils.GetActorID(c)}
	if err := h.deleteCommentUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// AddLabel handles POST /projects/:project/issues/:issue/labels/:label
func (h *IssueHandler) AddLabel(c *gin.Context) {
	h.changeLabel(c, h.addLabelUC, "Label added", "Label already set")
}

// RemoveLabel handles DELETE /projects/:project/issues/:issue/labels/:label
func (h *IssueHandler) RemoveLabel(c *gin.Context) {
	h.changeLabel(c, h.removeLabelUC, "Label removed", "Label was not set")
}

func (h *IssueHandler) changeLabel(c *gin.Context, uc usecases.IssueLabelExecutor, successMsg, infoMsg string) {
	ref, err := issueRef(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	labelID, err := utils.ParseUintParam(c, "label", "label")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := uc.Execute(c.Request.Context(), usecases.IssueLabelCommand{IssueRef: ref, LabelID: labelID, ActorID: utils.GetActorID(c)})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, successMsg, infoMsg, result.Issue)
}

// SetMilestone handles PUT /projects/:project/issues/:issue/milestone
func (h *IssueHandler) SetMilestone(c *gin.Context) {
	var req SetMilestoneRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for set milestone", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.changeMilestone(c, h.setMilestoneUC, req.Name, "Milestone set", "Milestone already set")
}

// UnsetMilestone handles DELETE /projects/:project/issues/:issue/milestone
func (h *IssueHandler) UnsetMilestone(c *gin.Context) {
	h.changeMilestone(c, h.unsetMilestoneUC, "", "Milestone removed", "No milestone was set")
}

func (h *IssueHandler) changeMilestone(c *gin.Context, uc usecases.IssueMilestoneExecutor, name, successMsg, infoMsg string) {
	ref, err := issueRef(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := uc.Execute(c.Request.Context(), usecases.IssueMilestoneCommand{IssueRef: ref, MilestoneName: name, ActorID: utils.GetActorID(c)})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, successMsg, infoMsg, result.Issue)
}

// Subscribe handles POST /projects/:project/issues/:issue/subscription
func (h *IssueHandler) Subscribe(c *gin.Context) {
	h.changeSubscription(c, h.subscribeUC, "Subscribed to issue", "Already subscribed")
}

// Unsubscribe handles DELETE /projects/:project/issues/:issue/subscription
func (h *IssueHandler) Unsubscribe(c *gin.Context) {
	h.changeSubscription(c, h.unsubscribeUC, "Unsubscribed from issue", "Not subscribed")
}

func (h *IssueHandler) changeSubscription(c *gin.Context, uc usecases.IssueSubscriptionExecutor, successMsg, infoMsg string) {
	ref, err := issueRef(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := uc.Execute(c.Request.Context(), usecases.IssueSubscriptionCommand{IssueRef: ref, ActorID: utils.GetActorID(c)})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, successMsg, infoMsg, SubscriptionResponse{Subscribed: result.Subscribed})
}
