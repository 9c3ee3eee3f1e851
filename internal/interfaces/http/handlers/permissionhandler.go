package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/application/permission/usecases"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/utils"
)

// PermissionHandler serves the global grant table under /permissions and the
// per-project tables under /projects/:project/permissions.
type PermissionHandler struct {
	listGrantsUC listGrantsUseCase
	grantUC      changeGrantUseCase
	revokeUC     changeGrantUseCase
	logger       logger.Interface
}

func NewPermissionHandler(listGrantsUC listGrantsUseCase, grantUC, revokeUC changeGrantUseCase, logger logger.Interface) *PermissionHandler {
	return &PermissionHandler{
		listGrantsUC: listGrantsUC,
		grantUC:      grantUC,
		revokeUC:     revokeUC,
		logger:       logger,
	}
}

// GrantRequest names the subject as "user:<id>", "group:<id>" or "team:<id>".
type GrantRequest struct {
	Subject string `json:"subject" validate:"required"`
	Perm    string `json:"perm" validate:"required"`
}

func scopeOf(c *gin.Context) usecases.Scope {
	return usecases.Scope{ActorID: utils.GetActorID(c), ProjectName: c.Param("project")}
}

// ListGrants handles GET /permissions and GET /projects/:project/permissions
func (h *PermissionHandler) ListGrants(c *gin.Context) {
	grants, err := h.listGrantsUC.Execute(c.Request.Context(), scopeOf(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", grants)
}

// Grant handles POST /permissions and POST /projects/:project/permissions
func (h *PermissionHandler) Grant(c *gin.Context) {
	h.change(c, h.grantUC, "Permission granted", "Permission already granted")
}

// Revoke handles DELETE /permissions and DELETE /projects/:project/permissions
func (h *PermissionHandler) Revoke(c *gin.Context) {
	h.change(c, h.revokeUC, "Permission revoked", "Permission was not granted")
}

func (h *PermissionHandler) change(c *gin.Context, uc changeGrantUseCase, successMsg, infoMsg string) {
	var req GrantRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	subject, err := permission.ParseSubject(req.Subject)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewFieldError("subject", err.Error()))
		return
	}

	result, err := uc.Execute(c.Request.Context(), usecases.ChangeGrantCommand{
		Scope:   scopeOf(c),
		Subject: subject,
		Perm:    req.Perm,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.logger.Infow("grant table changed",
		"actor_id", utils.GetActorID(c),
		"project", c.Param("project"),
		"subject", req.Subject,
		"perm", req.Perm,
		"modified", result.Modified,
	)
	utils.MutationResponse(c, result.Modified, successMsg, infoMsg, nil)
}
