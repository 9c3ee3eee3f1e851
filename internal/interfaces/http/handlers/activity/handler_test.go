package activity

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	activitydto "github.com/orris-inc/tracker/internal/application/activity/dto"
	"github.com/orris-inc/tracker/internal/application/activity/usecases"
	issuedto "github.com/orris-inc/tracker/internal/application/issue/dto"
	"github.com/orris-inc/tracker/internal/infrastructure/services"
	"github.com/orris-inc/tracker/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/tracker/internal/shared/errors"
)

type mockListActivityUC struct {
	got    usecases.ListActivityQuery
	result *usecases.ListActivityResult
	err    error
}

func (m *mockListActivityUC) Execute(_ context.Context, q usecases.ListActivityQuery) (*usecases.ListActivityResult, error) {
	m.got = q
	return m.result, m.err
}

type mockStreamAccessUC struct {
	projectID uint
	err       error
}

func (m *mockStreamAccessUC) Execute(_ context.Context, _ usecases.StreamAccessQuery) (uint, error) {
	return m.projectID, m.err
}

func TestActivityHandler_ListActivity(t *testing.T) {
	mockUC := &mockListActivityUC{result: &usecases.ListActivityResult{
		Entries:  []*activitydto.ActivityEntryDTO{{EventDTO: &issuedto.EventDTO{ID: 1}, IssueTitle: "Crash", AuthorName: "Alice"}},
		Total:    1,
		Page:     1,
		PageSize: 25,
	}}
	handler := NewActivityHandler(mockUC, nil, services.NewActivityHub(testutil.NewMockLogger(), nil))

	c, w := testutil.NewTestContext(http.MethodGet, "/projects/demo/activity", nil)
	testutil.SetURLParam(c, "project", "demo")

	handler.ListActivity(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "demo", mockUC.got.ProjectName)
	assert.Equal(t, 1, mockUC.got.Page)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestActivityHandler_StreamEvents_Hidden(t *testing.T) {
	hub := services.NewActivityHub(testutil.NewMockLogger(), nil)
	handler := NewActivityHandler(nil, &mockStreamAccessUC{err: errors.NewNotFoundError("project not found")}, hub)

	c, w := testutil.NewTestContext(http.MethodGet, "/projects/demo/activity/events", nil)
	testutil.SetURLParam(c, "project", "demo")

	handler.StreamEvents(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, hub.ClientCount(0))
}

func TestActivityHandler_StreamEvents(t *testing.T) {
	hub := services.NewActivityHub(testutil.NewMockLogger(), nil)
	handler := NewActivityHandler(nil, &mockStreamAccessUC{projectID: 7}, hub)

	c, w := testutil.NewTestContext(http.MethodGet, "/projects/demo/activity/events", nil)
	ctx, cancel := context.WithCancel(context.Background())
	c.Request = c.Request.WithContext(ctx)
	testutil.SetAuthContext(c, 3)
	testutil.SetURLParam(c, "project", "demo")

	done := make(chan struct{})
	go func() {
		handler.StreamEvents(c)
		close(done)
	}()

	require.Eventually(t, func() bool { return hub.ClientCount(7) == 1 }, time.Second, 5*time.Millisecond)
	hub.Broadcast(&activitydto.ActivityMessage{ID: 9, ProjectID: 7, Code: "COMMENT"})
	hub.Broadcast(&activitydto.ActivityMessage{ID: 10, ProjectID: 8, Code: "COMMENT"})

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	assert.Zero(t, hub.ClientCount(0))
	body := w.Body.String()
	assert.Contains(t, body, "event: activity\n")
	assert.Contains(t, body, `"id":9`)
	assert.NotContains(t, body, `"id":10`)
}
