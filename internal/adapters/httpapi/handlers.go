package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/logging"
	"github.com/renato0307/prmonitor/internal/ports"
	"github.com/renato0307/prmonitor/internal/services"
)

type handler struct {
	monitor  *services.MonitorService
	opener   ports.BrowserOpener
	streams  map[*websocket.Conn]struct{}
	streamMu sync.Mutex
	upgrader websocket.Upgrader
}

func newHandler(monitor *services.MonitorService, opener ports.BrowserOpener) *handler {
	return &handler{
		monitor:  monitor,
		opener:   opener,
		streams:  make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: localOrigin},
	}
}

// PullRequestResponse is the JSON form of a tracked pull request
type PullRequestResponse struct {
	AddedAt   time.Time  `json:"added_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	Mergeable string     `json:"mergeable_state,omitempty"`
	Merged    bool       `json:"merged"`
	Number    int        `json:"number"`
	Owner     string     `json:"owner"`
	Repo      string     `json:"repo"`
	State     string     `json:"state"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
}

type addPRRequest struct {
	URL string `json:"url"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type tokenResponse struct {
	HasToken bool `json:"has_token"`
}

type taskResponse struct {
	Running bool `json:"running"`
}

type themeBody struct {
	Theme string `json:"theme"`
}

type refreshTimeBody struct {
	Minutes int `json:"minutes"`
}

type notificationsBody struct {
	Enabled bool `json:"enabled"`
}

func (h *handler) toResponse(prs []domain.TrackedPullRequest) []PullRequestResponse {
	host := h.monitor.WebHost()
	out := make([]PullRequestResponse, 0, len(prs))
	for _, pr := range prs {
		out = append(out, PullRequestResponse{
			AddedAt:   pr.AddedAt,
			ClosedAt:  pr.ClosedAt,
			Mergeable: string(pr.Mergeable),
			Merged:    pr.Merged,
			Number:    pr.Number,
			Owner:     pr.Owner,
			Repo:      pr.Repo,
			State:     string(pr.State),
			Title:     pr.Title,
			URL:       pr.Identity().URL(host),
		})
	}
	return out
}

func (h *handler) listPRs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.toResponse(h.monitor.ListTracked()))
}

func (h *handler) addPR(w http.ResponseWriter, r *http.Request) {
	var req addPRRequest
	if !decodeBody(w, r, &req) {
		return
	}

	list, err := h.monitor.AddTracked(r.Context(), req.URL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toResponse(list))
}

func (h *handler) deletePR(w http.ResponseWriter, r *http.Request) {
	number, ok := numberParam(w, r)
	if !ok {
		return
	}

	if err := h.monitor.RemoveTracked(r.Context(), number); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) openPR(w http.ResponseWriter, r *http.Request) {
	number, ok := numberParam(w, r)
	if !ok {
		return
	}

	link, err := h.monitor.PullRequestURL(number)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.opener.Open(link); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) hasToken(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tokenResponse{HasToken: h.monitor.HasCredential()})
}

func (h *handler) setToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.monitor.SetCredential(r.Context(), req.Token); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) taskStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, taskResponse{Running: h.monitor.IsRunning()})
}

func (h *handler) startTask(w http.ResponseWriter, r *http.Request) {
	if err := h.monitor.StartTask(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, taskResponse{Running: h.monitor.IsRunning()})
}

func (h *handler) stopTask(w http.ResponseWriter, r *http.Request) {
	h.monitor.StopTask()
	writeJSON(w, http.StatusOK, taskResponse{Running: h.monitor.IsRunning()})
}

func (h *handler) getTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeBody{Theme: string(h.monitor.GetTheme())})
}

func (h *handler) setTheme(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.monitor.SetTheme(r.Context(), req.Theme); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: string(h.monitor.GetTheme())})
}

func (h *handler) getRefreshTime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, refreshTimeBody{Minutes: h.monitor.GetRefreshMinutes()})
}

func (h *handler) setRefreshTime(w http.ResponseWriter, r *http.Request) {
	var req refreshTimeBody
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.monitor.SetRefreshMinutes(r.Context(), req.Minutes); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshTimeBody{Minutes: h.monitor.GetRefreshMinutes()})
}

func (h *handler) getNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, notificationsBody{Enabled: h.monitor.GetShowNotification()})
}

func (h *handler) setNotifications(w http.ResponseWriter, r *http.Request) {
	var req notificationsBody
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.monitor.SetShowNotification(r.Context(), req.Enabled); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationsBody{Enabled: h.monitor.GetShowNotification()})
}

func numberParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number <= 0 {
		writeErrorResponse(w, http.StatusBadRequest, CodeInvalidRequest,
			fmt.Sprintf("invalid pull request number %q", chi.URLParam(r, "number")))
		return 0, false
	}
	return number, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logging.Logger.Debug("Invalid request body", "path", r.URL.Path, "error", err)
		writeErrorResponse(w, http.StatusBadRequest, CodeInvalidRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Warn("Failed to encode response", "error", err)
	}
}
