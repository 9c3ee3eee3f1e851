package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/application/common"
	"github.com/orris-inc/tracker/internal/application/user/usecases"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/utils"
)

// ProfileHandler serves the signed-in user's own account.
type ProfileHandler struct {
	getUserUC        getUserUseCase
	updateProfileUC  updateProfileUseCase
	changePasswordUC changePasswordUseCase
	logger           logger.Interface
}

func NewProfileHandler(getUserUC getUserUseCase, updateProfileUC updateProfileUseCase, changePasswordUC changePasswordUseCase) *ProfileHandler {
	return &ProfileHandler{
		getUserUC:        getUserUC,
		updateProfileUC:  updateProfileUC,
		changePasswordUC: changePasswordUC,
		logger:           logger.NewLogger(),
	}
}

// GetProfile handles GET /me
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := utils.GetActorID(c)
	if err := common.RequireLogin(userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	detail, err := h.getUserUC.Execute(c.Request.Context(), usecases.GetUserQuery{ActorID: userID, UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", detail)
}

// UpdateProfile handles PATCH /me
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := utils.GetActorID(c)

	var req UpdateProfileRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update profile", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateProfileUC.Execute(c.Request.Context(), req.ToCommand(userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, "Profile updated successfully", "Profile not modified", result.User)
}

// ChangePassword handles PUT /me/password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID := utils.GetActorID(c)

	var req ChangePasswordRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for change password", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.changePasswordUC.Execute(c.Request.Context(), req.ToCommand(userID)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}
