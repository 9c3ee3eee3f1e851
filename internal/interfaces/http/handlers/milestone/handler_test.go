package milestone

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	milestonedto "github.com/orris-inc/tracker/internal/application/milestone/dto"
	"github.com/orris-inc/tracker/internal/application/milestone/usecases"
	"github.com/orris-inc/tracker/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/tracker/internal/shared/errors"
)

type mockListMilestonesUC struct {
	got    usecases.ListMilestonesQuery
	result []*milestonedto.MilestoneDTO
	err    error
}

func (m *mockListMilestonesUC) Execute(_ context.Context, q usecases.ListMilestonesQuery) ([]*milestonedto.MilestoneDTO, error) {
	m.got = q
	return m.result, m.err
}

type mockCreateMilestoneUC struct {
	result *milestonedto.MilestoneDTO
	err    error
}

func (m *mockCreateMilestoneUC) Execute(_ context.Context, _ usecases.CreateMilestoneCommand) (*milestonedto.MilestoneDTO, error) {
	return m.result, m.err
}

type mockEditMilestoneUC struct {
	got    usecases.EditMilestoneCommand
	result *usecases.EditMilestoneResult
	err    error
}

func (m *mockEditMilestoneUC) Execute(_ context.Context, cmd usecases.EditMilestoneCommand) (*usecases.EditMilestoneResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockChangeStateUC struct {
	got    usecases.ChangeMilestoneStateCommand
	result *milestonedto.MilestoneDTO
	err    error
}

func (m *mockChangeStateUC) Execute(_ context.Context, cmd usecases.ChangeMilestoneStateCommand) (*milestonedto.MilestoneDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockDeleteMilestoneUC struct {
	err error
}

func (m *mockDeleteMilestoneUC) Execute(_ context.Context, _ usecases.DeleteMilestoneCommand) error {
	return m.err
}

type testDeps struct {
	list   usecases.ListMilestonesExecutor
	create usecases.CreateMilestoneExecutor
	edit   usecases.EditMilestoneExecutor
	close  usecases.ChangeMilestoneStateExecutor
	reopen usecases.ChangeMilestoneStateExecutor
	delete usecases.DeleteMilestoneExecutor
}

func newTestMilestoneHandler(deps testDeps) *MilestoneHandler {
	h := NewMilestoneHandler(deps.list, deps.create, deps.edit, deps.close, deps.reopen, deps.delete)
	h.logger = testutil.NewMockLogger()
	return h
}

func TestMilestoneHandler_ListMilestones(t *testing.T) {
	mockUC := &mockListMilestonesUC{result: []*milestonedto.MilestoneDTO{}}
	handler := newTestMilestoneHandler(testDeps{list: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/projects/demo/milestones", nil)
	testutil.SetURLParam(c, "project", "demo")
	testutil.SetQueryParams(c, map[string]string{"filter": "closed"})

	handler.ListMilestones(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "closed", mockUC.got.Filter)
}

func TestMilestoneHandler_CreateMilestone(t *testing.T) {
	handler := newTestMilestoneHandler(testDeps{create: &mockCreateMilestoneUC{result: &milestonedto.MilestoneDTO{}}})

	c, w := testutil.NewTestContext(http.MethodPost, "/projects/demo/milestones", CreateMilestoneRequest{Name: "v1.0"})
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "project", "demo")

	handler.CreateMilestone(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestMilestoneHandler_CreateMilestone_NameTaken(t *testing.T) {
	handler := newTestMilestoneHandler(testDeps{create: &mockCreateMilestoneUC{err: errors.NewFieldError("name", "milestone name already in use")}})

	c, w := testutil.NewTestContext(http.MethodPost, "/projects/demo/milestones", CreateMilestoneRequest{Name: "v1.0"})
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "project", "demo")

	handler.CreateMilestone(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Fields, "name")
}

func TestMilestoneHandler_EditMilestone(t *testing.T) {
	mockUC := &mockEditMilestoneUC{result: &usecases.EditMilestoneResult{Milestone: &milestonedto.MilestoneDTO{}, Modified: true}}
	handler := newTestMilestoneHandler(testDeps{edit: mockUC})

	c, w := testutil.NewTestContext(http.MethodPut, "/projects/demo/milestones/v1.0", EditMilestoneRequest{Name: "v1.1"})
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "project", "demo")
	testutil.SetURLParam(c, "milestone", "v1.0")

	handler.EditMilestone(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "v1.0", mockUC.got.MilestoneName)
	assert.Equal(t, "v1.1", mockUC.got.Name)
}

func TestMilestoneHandler_CloseAndReopen(t *testing.T) {
	closeUC := &mockChangeStateUC{result: &milestonedto.MilestoneDTO{}}
	reopenUC := &mockChangeStateUC{err: errors.NewNotFoundError("milestone not found")}
	handler := newTestMilestoneHandler(testDeps{close: closeUC, reopen: reopenUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/projects/demo/milestones/v1.0/close", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "project", "demo")
	testutil.SetURLParam(c, "milestone", "v1.0")
	handler.CloseMilestone(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "v1.0", closeUC.got.MilestoneName)

	c, w = testutil.NewTestContext(http.MethodPost, "/projects/demo/milestones/v2.0/reopen", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "project", "demo")
	testutil.SetURLParam(c, "milestone", "v2.0")
	handler.ReopenMilestone(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMilestoneHandler_DeleteMilestone(t *testing.T) {
	handler := newTestMilestoneHandler(testDeps{delete: &mockDeleteMilestoneUC{}})

	c, _ := testutil.NewTestContext(http.MethodDelete, "/projects/demo/milestones/v1.0", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "project", "demo")
	testutil.SetURLParam(c, "milestone", "v1.0")

	handler.DeleteMilestone(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
}
