package account

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userdto "github.com/orris-inc/tracker/internal/application/user/dto"
	"github.com/orris-inc/tracker/internal/application/user/usecases"
	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/tracker/internal/shared/errors"
)

type mockListUsersUC struct {
	got    usecases.ListUsersQuery
	result *usecases.ListUsersResult
	err    error
}

func (m *mockListUsersUC) Execute(_ context.Context, q usecases.ListUsersQuery) (*usecases.ListUsersResult, error) {
	m.got = q
	return m.result, m.err
}

type mockCreateUserUC struct {
	got    usecases.CreateUserCommand
	result *userdto.UserDTO
	err    error
}

func (m *mockCreateUserUC) Execute(_ context.Context, cmd usecases.CreateUserCommand) (*userdto.UserDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockDeleteUserUC struct {
	err error
}

func (m *mockDeleteUserUC) Execute(_ context.Context, _ usecases.DeleteUserCommand) error {
	return m.err
}

type mockChangeUserStateUC struct {
	result *usecases.ChangeUserStateResult
	err    error
}

func (m *mockChangeUserStateUC) Execute(_ context.Context, _ usecases.ChangeUserStateCommand) (*usecases.ChangeUserStateResult, error) {
	return m.result, m.err
}

type mockSaveGroupUC struct {
	got    usecases.SaveGroupCommand
	result *usecases.SaveGroupResult
	err    error
}

func (m *mockSaveGroupUC) Execute(_ context.Context, cmd usecases.SaveGroupCommand) (*usecases.SaveGroupResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockMembershipUC struct {
	got    usecases.MembershipCommand
	called bool
	result *usecases.MembershipResult
	err    error
}

func (m *mockMembershipUC) Execute(_ context.Context, cmd usecases.MembershipCommand) (*usecases.MembershipResult, error) {
	m.got = cmd
	m.called = true
	return m.result, m.err
}

func newTestAccountHandler(ucs AccountUseCases) *AccountHandler {
	h := NewAccountHandler(ucs)
	h.logger = testutil.NewMockLogger()
	return h
}

func TestAccountHandler_ListUsers(t *testing.T) {
	mockUC := &mockListUsersUC{result: &usecases.ListUsersResult{Users: []*userdto.UserDTO{{ID: 1}}, Total: 1, Page: 1, PageSize: 25}}
	handler := newTestAccountHandler(AccountUseCases{ListUsers: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/users", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetQueryParams(c, map[string]string{"search": "ali"})

	handler.ListUsers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ali", mockUC.got.Search)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestAccountHandler_CreateUser(t *testing.T) {
	mockUC := &mockCreateUserUC{result: &userdto.UserDTO{ID: 5}}
	handler := newTestAccountHandler(AccountUseCases{CreateUser: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/users", CreateUserRequest{Username: "bob", Email: "bob@example.com", Password: "secret"})
	testutil.SetAuthContext(c, 1)

	handler.CreateUser(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "bob", mockUC.got.Username)
	assert.Equal(t, uint(1), mockUC.got.ActorID)
}

func TestAccountHandler_CreateUser_InvalidBody(t *testing.T) {
	tests := []struct {
		name  string
		body  any
		field string
	}{
		{name: "missing username", body: map[string]string{"email": "a@example.com"}, field: "username"},
		{name: "bad email", body: CreateUserRequest{Username: "bob", Email: "nope"}, field: "email"},
		{name: "bad preference", body: CreateUserRequest{Username: "bob", Notification: "SOMETIMES"}, field: "notification"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestAccountHandler(AccountUseCases{CreateUser: &mockCreateUserUC{}})

			c, w := testutil.NewTestContext(http.MethodPost, "/users", tt.body)
			testutil.SetAuthContext(c, 1)

			handler.CreateUser(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			require.NotNil(t, resp.Error)
			assert.Contains(t, resp.Error.Fields, tt.field)
		})
	}
}

func TestAccountHandler_DeleteUser_Self(t *testing.T) {
	handler := newTestAccountHandler(AccountUseCases{DeleteUser: &mockDeleteUserUC{err: errors.NewValidationError("cannot delete your own account")}})

	c, w := testutil.NewTestContext(http.MethodDelete, "/users/1", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "1")

	handler.DeleteUser(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandler_DisableUser_AlreadyDisabled(t *testing.T) {
	handler := newTestAccountHandler(AccountUseCases{DisableUser: &mockChangeUserStateUC{result: &usecases.ChangeUserStateResult{User: &userdto.UserDTO{ID: 2}}}})

	c, w := testutil.NewTestContext(http.MethodPost, "/users/2/disable", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "2")

	handler.DisableUser(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Modified)
	assert.False(t, *resp.Modified)
	assert.Equal(t, "User already disabled", resp.Message)
}

func TestAccountHandler_CreateAndRenameGroup(t *testing.T) {
	mockUC := &mockSaveGroupUC{result: &usecases.SaveGroupResult{Group: &userdto.GroupDTO{}, Modified: true}}
	handler := newTestAccountHandler(AccountUseCases{SaveGroup: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/groups", NameRequest{Name: "devs"})
	testutil.SetAuthContext(c, 1)
	handler.CreateGroup(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Zero(t, mockUC.got.GroupID)

	c, w = testutil.NewTestContext(http.MethodPut, "/groups/3", NameRequest{Name: "ops"})
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "3")
	handler.RenameGroup(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), mockUC.got.GroupID)
	assert.Equal(t, "ops", mockUC.got.Name)
}

func TestAccountHandler_AddTeamMember(t *testing.T) {
	mockUC := &mockMembershipUC{result: &usecases.MembershipResult{Modified: true}}
	handler := newTestAccountHandler(AccountUseCases{AddMember: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/teams/4/members", AddMemberRequest{Member: "group:2"})
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "4")

	handler.AddTeamMember(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, permission.Team(4), mockUC.got.Container)
	assert.Equal(t, permission.Group(2), mockUC.got.Member)
}

func TestAccountHandler_AddGroupMember_BadSubject(t *testing.T) {
	mockUC := &mockMembershipUC{}
	handler := newTestAccountHandler(AccountUseCases{AddMember: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/groups/4/members", AddMemberRequest{Member: "robot:2"})
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "4")

	handler.AddGroupMember(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockUC.called)
}

func TestAccountHandler_RemoveGroupMember(t *testing.T) {
	mockUC := &mockMembershipUC{result: &usecases.MembershipResult{Modified: false}}
	handler := newTestAccountHandler(AccountUseCases{RemoveMember: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/groups/4/members/user:9", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "4")
	testutil.SetURLParam(c, "member", "user:9")

	handler.RemoveGroupMember(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, permission.Group(4), mockUC.got.Container)
	assert.Equal(t, permission.User(9), mockUC.got.Member)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "Not a member", resp.Message)
}
