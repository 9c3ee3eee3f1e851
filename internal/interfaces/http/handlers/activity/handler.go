package activity

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/application/activity/usecases"
	"github.com/orris-inc/tracker/internal/infrastructure/services"
	"github.com/orris-inc/tracker/internal/interfaces/http/handlers/common"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/utils"
)

// Hub is the live activity fan-out used by the stream endpoints.
type Hub interface {
	Register(userID, projectID uint) *services.ActivityConn
	Unregister(connID string)
	Serve(w http.ResponseWriter, r *http.Request, userID, projectID uint) error
}

type ActivityHandler struct {
	listActivityUC usecases.ListActivityExecutor
	streamAccessUC usecases.StreamAccessExecutor
	hub            Hub
	sse            *common.SSEHandlerBase
	logger         logger.Interface
}

func NewActivityHandler(
	listActivityUC usecases.ListActivityExecutor,
	streamAccessUC usecases.StreamAccessExecutor,
	hub Hub,
) *ActivityHandler {
	log := logger.NewLogger()
	return &ActivityHandler{
		listActivityUC: listActivityUC,
		streamAccessUC: streamAccessUC,
		hub:            hub,
		sse:            common.NewSSEHandlerBase(hub, log),
		logger:         log,
	}
}

// ListActivity handles GET /projects/:project/activity
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	query := usecases.ListActivityQuery{
		ProjectName: c.Param("project"),
		ActorID:     utils.GetActorID(c),
	}
	query.Page = utils.ParsePagination(c, 0).Page

	result, err := h.listActivityUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Entries, result.Total, result.Page, result.PageSize)
}

func (h *ActivityHandler) streamProject(c *gin.Context) (uint, uint, bool) {
	actorID := utils.GetActorID(c)
	projectID, err := h.streamAccessUC.Execute(c.Request.Context(), usecases.StreamAccessQuery{
		ProjectName: c.Param("project"),
		ActorID:     actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, 0, false
	}
	return actorID, projectID, true
}

// StreamWebSocket handles GET /projects/:project/activity/ws
func (h *ActivityHandler) StreamWebSocket(c *gin.Context) {
	actorID, projectID, ok := h.streamProject(c)
	if !ok {
		return
	}

	if err := h.hub.Serve(c.Writer, c.Request, actorID, projectID); err != nil {
		// The upgrader has already answered the client.
		h.logger.Warnw("activity websocket failed", "project_id", projectID, "user_id", actorID, "error", err)
	}
}

// StreamEvents handles GET /projects/:project/activity/events
func (h *ActivityHandler) StreamEvents(c *gin.Context) {
	actorID, projectID, ok := h.streamProject(c)
	if !ok {
		return
	}

	conn := h.hub.Register(actorID, projectID)
	h.sse.SetupSSEResponse(c)
	c.Status(http.StatusOK)
	if !h.sse.SendInitialConnection(c) {
		h.hub.Unregister(conn.ID)
		h.logger.Warnw("sse initial write error", "conn_id", conn.ID)
		return
	}

	h.logger.Infow("activity stream opened", "conn_id", conn.ID, "project_id", projectID, "user_id", actorID)
	h.sse.RunEventLoop(c, conn.Send, conn.ID, "activity")
}
