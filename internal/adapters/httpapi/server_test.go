package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/prmonitor/internal/adapters/storage"
	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/events"
	portsmocks "github.com/renato0307/prmonitor/internal/ports/mocks"
	"github.com/renato0307/prmonitor/internal/services"
)

type apiHarness struct {
	bus     *events.Bus
	fetcher *portsmocks.MockStateFetcher
	opener  *portsmocks.MockBrowserOpener
	server  *httptest.Server
	store   *services.StateStore
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()

	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	store, err := services.OpenStateStore(context.Background(), repo)
	require.NoError(t, err)

	bus := events.NewBus()
	t.Cleanup(bus.Close)

	fetcher := portsmocks.NewMockStateFetcher(t)
	opener := portsmocks.NewMockBrowserOpener(t)
	scheduler := services.NewScheduler(store, fetcher, bus, services.SchedulerConfig{})
	t.Cleanup(scheduler.Stop)
	monitor := services.NewMonitorService(store, scheduler, fetcher, bus, "")

	srv := NewServer("127.0.0.1:0", monitor, opener)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &apiHarness{bus: bus, fetcher: fetcher, opener: opener, server: ts, store: store}
}

func (h *apiHarness) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, h.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (h *apiHarness) seed(t *testing.T, number int) {
	t.Helper()
	require.NoError(t, h.store.Add(context.Background(), domain.TrackedPullRequest{
		Number: number,
		Owner:  "acme",
		Repo:   "widgets",
		State:  domain.StateOpen,
		Title:  "Fix widget",
	}))
}

func TestHealth(t *testing.T) {
	h := newAPIHarness(t)

	resp := h.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"status": "healthy"}, decode[map[string]string](t, resp))
}

func TestAddPR(t *testing.T) {
	h := newAPIHarness(t)
	require.NoError(t, h.store.SetCredential(context.Background(), "ghp_test"))
	id := domain.PRIdentity{Owner: "acme", Repo: "widgets", Number: 42}
	h.fetcher.EXPECT().FetchState(mock.Anything, id, "ghp_test").
		Return(domain.RemoteState{State: domain.StateOpen, Title: "Add gears"}, nil).Once()

	resp := h.do(t, http.MethodPost, "/api/prs", `{"url":"https://github.com/acme/widgets/pull/42"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	list := decode[[]PullRequestResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, 42, list[0].Number)
	assert.Equal(t, "Add gears", list[0].Title)
	assert.Equal(t, "open", list[0].State)
	assert.Equal(t, "https://github.com/acme/widgets/pull/42", list[0].URL)

	resp = h.do(t, http.MethodGet, "/api/prs", "")
	assert.Len(t, decode[[]PullRequestResponse](t, resp), 1)
}

func TestAddPR_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		credential string
		seed       bool
		wantStatus int
		wantCode   ErrorCode
	}{
		{"malformed body", `{"url":`, "ghp_test", false, http.StatusBadRequest, CodeInvalidRequest},
		{"invalid url", `{"url":"https://github.com/acme/widgets/issues/42"}`, "ghp_test", false, http.StatusBadRequest, CodeInvalidURL},
		{"duplicate", `{"url":"https://github.com/other/repo/pull/42"}`, "ghp_test", true, http.StatusConflict, CodeDuplicate},
		{"no credential", `{"url":"https://github.com/acme/widgets/pull/42"}`, "", false, http.StatusUnauthorized, CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAPIHarness(t)
			if tt.credential != "" {
				require.NoError(t, h.store.SetCredential(context.Background(), tt.credential))
			}
			if tt.seed {
				h.seed(t, 42)
			}

			resp := h.do(t, http.MethodPost, "/api/prs", tt.body)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, decode[ErrorResponse](t, resp).Error.Code)
		})
	}
}

func TestAddPR_UpstreamFailure(t *testing.T) {
	h := newAPIHarness(t)
	require.NoError(t, h.store.SetCredential(context.Background(), "ghp_test"))
	h.fetcher.EXPECT().FetchState(mock.Anything, mock.Anything, "ghp_test").
		Return(domain.RemoteState{}, domain.NewFetchError(domain.ErrNotFound, nil)).Once()

	resp := h.do(t, http.MethodPost, "/api/prs", `{"url":"https://github.com/acme/widgets/pull/404"}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, h.store.ListTracked())
}

func TestDeletePR(t *testing.T) {
	h := newAPIHarness(t)
	h.seed(t, 7)

	resp := h.do(t, http.MethodDelete, "/api/prs/7", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, h.store.ListTracked())

	// removing twice is not an error
	resp = h.do(t, http.MethodDelete, "/api/prs/7", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = h.do(t, http.MethodDelete, "/api/prs/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOpenPR(t *testing.T) {
	h := newAPIHarness(t)
	h.seed(t, 7)
	h.opener.EXPECT().Open("https://github.com/acme/widgets/pull/7").Return(nil).Once()

	resp := h.do(t, http.MethodPost, "/api/prs/7/open", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = h.do(t, http.MethodPost, "/api/prs/8/open", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestToken(t *testing.T) {
	h := newAPIHarness(t)

	resp := h.do(t, http.MethodGet, "/api/token", "")
	assert.False(t, decode[tokenResponse](t, resp).HasToken)

	resp = h.do(t, http.MethodPut, "/api/token", `{"token":" ghp_new "}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/api/token", "")
	assert.True(t, decode[tokenResponse](t, resp).HasToken)

	credential, ok := h.store.Credential()
	require.True(t, ok)
	assert.Equal(t, "ghp_new", credential)
}

func TestSettings(t *testing.T) {
	h := newAPIHarness(t)

	resp := h.do(t, http.MethodGet, "/api/settings/refresh-time", "")
	assert.Equal(t, 5, decode[refreshTimeBody](t, resp).Minutes)

	resp = h.do(t, http.MethodPut, "/api/settings/refresh-time", `{"minutes":10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10, decode[refreshTimeBody](t, resp).Minutes)
	assert.Equal(t, 10*time.Minute, h.store.RefreshInterval())

	resp = h.do(t, http.MethodPut, "/api/settings/refresh-time", `{"minutes":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, CodeInvalidSettings, decode[ErrorResponse](t, resp).Error.Code)

	resp = h.do(t, http.MethodPut, "/api/settings/theme", `{"theme":"dark"}`)
	assert.Equal(t, "dark", decode[themeBody](t, resp).Theme)

	resp = h.do(t, http.MethodPut, "/api/settings/theme", `{"theme":"neon"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/api/settings/theme", "")
	assert.Equal(t, "dark", decode[themeBody](t, resp).Theme)

	resp = h.do(t, http.MethodPut, "/api/settings/notifications", `{"enabled":false}`)
	assert.False(t, decode[notificationsBody](t, resp).Enabled)

	resp = h.do(t, http.MethodGet, "/api/settings/notifications", "")
	assert.False(t, decode[notificationsBody](t, resp).Enabled)
}

func TestTask(t *testing.T) {
	h := newAPIHarness(t)

	resp := h.do(t, http.MethodGet, "/api/task", "")
	assert.False(t, decode[taskResponse](t, resp).Running)

	resp = h.do(t, http.MethodPost, "/api/task/start", "")
	assert.True(t, decode[taskResponse](t, resp).Running)

	resp = h.do(t, http.MethodPost, "/api/task/stop", "")
	assert.False(t, decode[taskResponse](t, resp).Running)
}

func TestEventStream(t *testing.T) {
	h := newAPIHarness(t)

	wsURL := "ws" + strings.TrimPrefix(h.server.URL, "http") + "/api/events"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	defer conn.Close()

	h.bus.Publish(domain.NewStateChangedEvent(domain.TrackedPullRequest{
		Number: 42, Owner: "acme", Repo: "widgets", State: domain.StateClosed,
	}))
	h.bus.Publish(domain.NewFailureEvent(domain.PRIdentity{}, "unauthorized: no credential configured"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var first, second domain.WireEvent
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))

	assert.Equal(t, domain.WireEvent{Event: "pr-closed", Payload: "42"}, first)
	assert.Equal(t, domain.WireEvent{Event: "error-event", Payload: "unauthorized: no credential configured"}, second)
}

func TestEventStream_RejectsForeignOrigin(t *testing.T) {
	h := newAPIHarness(t)

	wsURL := "ws" + strings.TrimPrefix(h.server.URL, "http") + "/api/events"
	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMapError(t *testing.T) {
	status, code := mapError(domain.NewFetchError(domain.ErrRateLimited, nil))
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, CodeRateLimited, code)

	status, code = mapError(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, CodeInternal, code)
}
