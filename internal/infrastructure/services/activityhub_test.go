package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/application/activity/dto"
	"github.com/orris-inc/tracker/internal/domain/issue"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

func startHubServer(t *testing.T, hub *ActivityHub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		projectID, _ := strconv.ParseUint(r.URL.Query().Get("project"), 10, 64)
		_ = hub.Serve(w, r, 1, uint(projectID))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialHub(t *testing.T, srv *httptest.Server, projectID int) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?project=" + strconv.Itoa(projectID)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) *dto.ActivityMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg dto.ActivityMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return &msg
}

func TestActivityHub_BroadcastFiltersByProject(t *testing.T) {
	hub := NewActivityHub(logger.NewLogger(), nil)
	defer hub.Shutdown()
	srv := startHubServer(t, hub)

	demo := dialHub(t, srv, 3)
	other := dialHub(t, srv, 4)

	require.Eventually(t, func() bool { return hub.ClientCount(0) == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, hub.ClientCount(3))

	hub.Broadcast(&dto.ActivityMessage{ID: 10, ProjectID: 3, IssueID: 1, Code: "COMMENT", Body: "hello"})
	hub.Broadcast(&dto.ActivityMessage{ID: 11, ProjectID: 4, IssueID: 2, Code: "CLOSE"})

	msg := readMessage(t, demo)
	assert.Equal(t, uint(10), msg.ID)
	assert.Equal(t, "hello", msg.Body)

	msg = readMessage(t, other)
	assert.Equal(t, uint(11), msg.ID)
}

func TestActivityHub_UnregistersOnDisconnect(t *testing.T) {
	hub := NewActivityHub(logger.NewLogger(), nil)
	defer hub.Shutdown()
	srv := startHubServer(t, hub)

	conn := dialHub(t, srv, 1)
	require.Eventually(t, func() bool { return hub.ClientCount(1) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	require.Eventually(t, func() bool { return hub.ClientCount(1) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestActivityHub_Shutdown(t *testing.T) {
	hub := NewActivityHub(logger.NewLogger(), nil)
	srv := startHubServer(t, hub)

	conn := dialHub(t, srv, 1)
	require.Eventually(t, func() bool { return hub.ClientCount(0) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Shutdown()
	hub.Shutdown()
	assert.Equal(t, 0, hub.ClientCount(0))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	rec := httptest.NewRecorder()
	err = hub.Serve(rec, httptest.NewRequest(http.MethodGet, "/", nil), 1, 1)
	assert.ErrorIs(t, err, ErrHubClosed)
}

func TestActivityHub_RejectsUnknownOrigin(t *testing.T) {
	hub := NewActivityHub(logger.NewLogger(), []string{"https://tracker.example.com"})
	defer hub.Shutdown()
	srv := startHubServer(t, hub)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?project=1"
	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "https://tracker.example.com")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	conn.Close()
}

type fakeRelay struct {
	published []*dto.ActivityMessage
	err       error
}

func (r *fakeRelay) Publish(_ context.Context, msg *dto.ActivityMessage) error {
	r.published = append(r.published, msg)
	return r.err
}

func TestActivityPublisher_PublishEvents(t *testing.T) {
	hub := NewActivityHub(logger.NewLogger(), nil)
	defer hub.Shutdown()
	conn := hub.Register(1, 5)

	iss, err := issue.ReconstructIssue(5, 2, "Crash", "", nil, false, 1, nil, nil, time.Now(), time.Now())
	require.NoError(t, err)
	ev, err := issue.NewComment(iss, 1, "first")
	require.NoError(t, err)
	require.NoError(t, ev.SetID(40))

	relay := &fakeRelay{err: errors.New("redis down")}
	pub := NewActivityPublisher(hub, relay, logger.NewLogger())
	pub.PublishEvents(context.Background(), ev)

	require.Len(t, relay.published, 1)
	assert.Equal(t, uint(40), relay.published[0].ID)

	select {
	case data := <-conn.Send:
		var msg dto.ActivityMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "COMMENT", msg.Code)
		assert.Equal(t, uint(2), msg.IssueID)
	default:
		t.Fatal("expected a queued message")
	}

	NewActivityPublisher(hub, nil, logger.NewLogger()).PublishEvents(context.Background(), ev)
	assert.Len(t, conn.Send, 1)
}
