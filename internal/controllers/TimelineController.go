package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"net/http"
	"strings"
	"time"
	"wallfeed/internal/providers"
	"wallfeed/internal/services"
	"wallfeed/internal/timeline"
)

const (
	ProfilePrefix = "/profile/"
	UpdatePrefix  = "/update/"
)

type TimelineController struct {
	logger  providers.Logger
	service services.TimelineServiceInterface
	now     func() time.Time
}

func NewTimelineController(logger providers.Logger, service services.TimelineServiceInterface) *TimelineController {
	return &TimelineController{
		logger:  logger,
		service: service,
		now:     time.Now,
	}
}

// splitProfilePath splits "/profile/{nickname}/status/seg..." into the
// nickname and the filter segments.
func splitProfilePath(path string) (string, []string, bool) {
	rest := strings.TrimPrefix(path, ProfilePrefix)
	if rest == path {
		return "", nil, false
	}
	parts := strings.Split(strings.TrimSuffix(rest, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] != "status" {
		return "", nil, false
	}
	return parts[0], parts[2:], true
}

func (tc *TimelineController) Status(w http.ResponseWriter, r *http.Request) {
	nickname, segments, ok := splitProfilePath(r.URL.Path)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not Found"})
		return
	}
	viewer, err := viewerFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	res, err := tc.service.Render(r.Context(), services.RenderRequest{
		Nickname: nickname,
		Segments: segments,
		Query:    r.URL.Query(),
		Viewer:   viewer,
		Now:      tc.now(),
	})
	if err != nil {
		tc.writeError(w, r, nickname, err)
		return
	}
	writeJSON(w, http.StatusOK, newTimelineResponse(res))
}

func (tc *TimelineController) Update(w http.ResponseWriter, r *http.Request) {
	nickname := strings.Trim(strings.TrimPrefix(r.URL.Path, UpdatePrefix), "/")
	if nickname == "" || strings.Contains(nickname, "/") {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not Found"})
		return
	}
	viewer, err := viewerFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	res, err := tc.service.Poll(r.Context(), nickname, viewer)
	if err != nil {
		tc.writeError(w, r, nickname, err)
		return
	}
	resp := updateResponse{NewItems: res.NewItems}
	if res.Known {
		last := res.LastSeen.UTC()
		resp.LastSeen = &last
	}
	writeJSON(w, http.StatusOK, resp)
}

func (tc *TimelineController) writeError(w http.ResponseWriter, r *http.Request, nickname string, err error) {
	logType := providers.GetLogTypeByRequestType(r.Method)
	var denied *timeline.AccessDeniedError
	var storageErr *timeline.StorageError
	switch {
	case errors.Is(err, timeline.ErrProfileNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not Found"})
	case errors.As(err, &denied):
		status := http.StatusForbidden
		if denied.Reason == timeline.DenyLoginRequired {
			status = http.StatusUnauthorized
		}
		writeJSON(w, status, errorResponse{Error: http.StatusText(status), Reason: denied.Reason.String()})
	case errors.As(err, &storageErr):
		tc.logger.Errorf(logType, "Timeline of %s failed at %s: %s", nickname, storageErr.Op, storageErr.Err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	default:
		tc.logger.Errorf(logType, "Timeline of %s failed: %s", nickname, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	gson, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}
