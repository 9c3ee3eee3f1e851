package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/application/setting/usecases"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/utils"
)

type SettingHandler struct {
	getSettingsUC    getSettingsUseCase
	updateSettingsUC updateSettingsUseCase
	logger           logger.Interface
}

func NewSettingHandler(getSettingsUC getSettingsUseCase, updateSettingsUC updateSettingsUseCase, logger logger.Interface) *SettingHandler {
	return &SettingHandler{
		getSettingsUC:    getSettingsUC,
		updateSettingsUC: updateSettingsUC,
		logger:           logger,
	}
}

type UpdateSettingsRequest struct {
	ItemsPerPage int `json:"items_per_page" validate:"required"`
}

// GetSettings handles GET /settings
func (h *SettingHandler) GetSettings(c *gin.Context) {
	s, err := h.getSettingsUC.Execute(c.Request.Context(), utils.GetActorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", s)
}

// UpdateSettings handles PUT /settings
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateSettingsUC.Execute(c.Request.Context(), usecases.UpdateSettingsCommand{
		ActorID:      utils.GetActorID(c),
		ItemsPerPage: req.ItemsPerPage,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, "Settings updated successfully", "Settings not modified", result.Settings)
}
