// Package account serves user, group and team administration.
package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tracker/internal/application/user/usecases"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
	"github.com/orris-inc/tracker/internal/shared/utils"
)

// AccountUseCases groups the executors an AccountHandler dispatches to.
type AccountUseCases struct {
	ListUsers    usecases.ListUsersExecutor
	GetUser      usecases.GetUserExecutor
	CreateUser   usecases.CreateUserExecutor
	UpdateUser   usecases.UpdateUserExecutor
	DeleteUser   usecases.DeleteUserExecutor
	SetPassword  usecases.SetPasswordExecutor
	ActivateUser usecases.ChangeUserStateExecutor
	DisableUser  usecases.ChangeUserStateExecutor
	ListGroups   usecases.ListGroupsExecutor
	GetGroup     usecases.GetGroupExecutor
	SaveGroup    usecases.SaveGroupExecutor
	DeleteGroup  usecases.DeleteGroupExecutor
	ListTeams    usecases.ListTeamsExecutor
	GetTeam      usecases.GetTeamExecutor
	SaveTeam     usecases.SaveTeamExecutor
	DeleteTeam   usecases.DeleteTeamExecutor
	AddMember    usecases.MembershipExecutor
	RemoveMember usecases.MembershipExecutor
}

type AccountHandler struct {
	uc     AccountUseCases
	logger logger.Interface
}

func NewAccountHandler(ucs AccountUseCases) *AccountHandler {
	return &AccountHandler{uc: ucs, logger: logger.NewLogger()}
}

// ListUsers handles GET /users?search=&page=&page_size=
func (h *AccountHandler) ListUsers(c *gin.Context) {
	p := utils.ParsePagination(c, 0)
	result, err := h.uc.ListUsers.Execute(c.Request.Context(), usecases.ListUsersQuery{
		ActorID:  utils.GetActorID(c),
		Search:   c.Query("search"),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Users, result.Total, result.Page, result.PageSize)
}

// GetUser handles GET /users/:id
func (h *AccountHandler) GetUser(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	detail, err := h.uc.GetUser.Execute(c.Request.Context(), usecases.GetUserQuery{ActorID: utils.GetActorID(c), UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", detail)
}

// CreateUser handles POST /users
func (h *AccountHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	u, err := h.uc.CreateUser.Execute(c.Request.Context(), req.ToCommand(utils.GetActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, u, "User created successfully")
}

// UpdateUser handles PUT /users/:id
func (h *AccountHandler) UpdateUser(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req UpdateUserRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update user", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.UpdateUser.Execute(c.Request.Context(), req.ToCommand(userID, utils.GetActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, "User updated successfully", "User not modified", result.User)
}

// DeleteUser handles DELETE /users/:id
func (h *AccountHandler) DeleteUser(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.uc.DeleteUser.Execute(c.Request.Context(), usecases.DeleteUserCommand{ActorID: utils.GetActorID(c), UserID: userID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// SetPassword handles PUT /users/:id/password
func (h *AccountHandler) SetPassword(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req SetPasswordRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.SetPasswordCommand{ActorID: utils.GetActorID(c), UserID: userID, Password: req.Password}
	if err := h.uc.SetPassword.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Password updated successfully", nil)
}

// ActivateUser handles POST /users/:id/activate
func (h *AccountHandler) ActivateUser(c *gin.Context) {
	h.changeUserState(c, h.uc.ActivateUser, "User activated", "User already active")
}

// DisableUser handles POST /users/:id/disable
func (h *AccountHandler) DisableUser(c *gin.Context) {
	h.changeUserState(c, h.uc.DisableUser, "User disabled", "User already disabled")
}

func (h *AccountHandler) changeUserState(c *gin.Context, uc usecases.ChangeUserStateExecutor, successMsg, infoMsg string) {
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := uc.Execute(c.Request.Context(), usecases.ChangeUserStateCommand{ActorID: utils.GetActorID(c), UserID: userID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, successMsg, infoMsg, result.User)
}

// ListGroups handles GET /groups
func (h *AccountHandler) ListGroups(c *gin.Context) {
	groups, err := h.uc.ListGroups.Execute(c.Request.Context(), utils.GetActorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", groups)
}

// GetGroup handles GET /groups/:id
func (h *AccountHandler) GetGroup(c *gin.Context) {
	groupID, err := utils.ParseUintParam(c, "id", "group")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	detail, err := h.uc.GetGroup.Execute(c.Request.Context(), usecases.GetGroupQuery{ActorID: utils.GetActorID(c), GroupID: groupID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", detail)
}

// CreateGroup handles POST /groups
func (h *AccountHandler) CreateGroup(c *gin.Context) {
	h.saveGroup(c, 0)
}

// RenameGroup handles PUT /groups/:id
func (h *AccountHandler) RenameGroup(c *gin.Context) {
	groupID, err := utils.ParseUintParam(c, "id", "group")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.saveGroup(c, groupID)
}

func (h *AccountHandler) saveGroup(c *gin.Context, groupID uint) {
	var req NameRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.SaveGroup.Execute(c.Request.Context(), usecases.SaveGroupCommand{ActorID: utils.GetActorID(c), GroupID: groupID, Name: req.Name})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if groupID == 0 {
		utils.CreatedResponse(c, result.Group, "Group created successfully")
		return
	}
	utils.MutationResponse(c, result.Modified, "Group renamed successfully", "Group not modified", result.Group)
}

// DeleteGroup handles DELETE /groups/:id
func (h *AccountHandler) DeleteGroup(c *gin.Context) {
	groupID, err := utils.ParseUintParam(c, "id", "group")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.uc.DeleteGroup.Execute(c.Request.Context(), usecases.DeleteGroupCommand{ActorID: utils.GetActorID(c), GroupID: groupID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// ListTeams handles GET /teams
func (h *AccountHandler) ListTeams(c *gin.Context) {
	teams, err := h.uc.ListTeams.Execute(c.Request.Context(), utils.GetActorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", teams)
}

// GetTeam handles GET /teams/:id
func (h *AccountHandler) GetTeam(c *gin.Context) {
	teamID, err := utils.ParseUintParam(c, "id", "team")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	detail, err := h.uc.GetTeam.Execute(c.Request.Context(), usecases.GetTeamQuery{ActorID: utils.GetActorID(c), TeamID: teamID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", detail)
}

// CreateTeam handles POST /teams
func (h *AccountHandler) CreateTeam(c *gin.Context) {
	h.saveTeam(c, 0)
}

// RenameTeam handles PUT /teams/:id
func (h *AccountHandler) RenameTeam(c *gin.Context) {
	teamID, err := utils.ParseUintParam(c, "id", "team")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.saveTeam(c, teamID)
}

func (h *AccountHandler) saveTeam(c *gin.Context, teamID uint) {
	var req NameRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.SaveTeam.Execute(c.Request.Context(), usecases.SaveTeamCommand{ActorID: utils.GetActorID(c), TeamID: teamID, Name: req.Name})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if teamID == 0 {
		utils.CreatedResponse(c, result.Team, "Team created successfully")
		return
	}
	utils.MutationResponse(c, result.Modified, "Team renamed successfully", "Team not modified", result.Team)
}

// DeleteTeam handles DELETE /teams/:id
func (h *AccountHandler) DeleteTeam(c *gin.Context) {
	teamID, err := utils.ParseUintParam(c, "id", "team")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.uc.DeleteTeam.Execute(c.Request.Context(), usecases.DeleteTeamCommand{ActorID: utils.GetActorID(c), TeamID: teamID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// AddGroupMember handles POST /groups/:id/members
func (h *AccountHandler) AddGroupMember(c *gin.Context) {
	h.addMember(c, permission.KindGroup)
}

// AddTeamMember handles POST /teams/:id/members
func (h *AccountHandler) AddTeamMember(c *gin.Context) {
	h.addMember(c, permission.KindTeam)
}

// RemoveGroupMember handles DELETE /groups/:id/members/:member
func (h *AccountHandler) RemoveGroupMember(c *gin.Context) {
	h.removeMember(c, permission.KindGroup)
}

// RemoveTeamMember handles DELETE /teams/:id/members/:member
func (h *AccountHandler) RemoveTeamMember(c *gin.Context) {
	h.removeMember(c, permission.KindTeam)
}

func (h *AccountHandler) addMember(c *gin.Context, kind permission.SubjectKind) {
	container, err := containerParam(c, kind)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req AddMemberRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	member, err := permission.ParseSubject(req.Member)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewFieldError("member", err.Error()))
		return
	}
	h.changeMembership(c, h.uc.AddMember, container, member, "Member added", "Already a member")
}

func (h *AccountHandler) removeMember(c *gin.Context, kind permission.SubjectKind) {
	container, err := containerParam(c, kind)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	member, err := permission.ParseSubject(c.Param("member"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("member not found"))
		return
	}
	h.changeMembership(c, h.uc.RemoveMember, container, member, "Member removed", "Not a member")
}

func (h *AccountHandler) changeMembership(c *gin.Context, uc usecases.MembershipExecutor, container, member permission.Subject, successMsg, infoMsg string) {
	result, err := uc.Execute(c.Request.Context(), usecases.MembershipCommand{
		ActorID:   utils.GetActorID(c),
		Container: container,
		Member:    member,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.MutationResponse(c, result.Modified, successMsg, infoMsg, nil)
}

func containerParam(c *gin.Context, kind permission.SubjectKind) (permission.Subject, error) {
	id, err := utils.ParseUintParam(c, "id", string(kind))
	if err != nil {
		return permission.Subject{}, err
	}
	return permission.Subject{Kind: kind, ID: id}, nil
}
