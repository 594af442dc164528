package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"
	"wallfeed/internal/storage"
	"wallfeed/internal/structures"
)

type HealthController struct {
	store     storage.PostStore
	driver    string
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Storage       string  `json:"storage"`
	StorageError  string  `json:"storage_error,omitempty"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Storage:       hc.driver,
	}
	status := http.StatusOK
	if err := hc.store.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.StorageError = err.Error()
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store storage.PostStore, conf *structures.Config) *HealthController {
	return &HealthController{
		store:     store,
		driver:    conf.Storage.Driver,
		startTime: time.Now(),
	}
}
