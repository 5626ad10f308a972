package httpsrv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/khmm12/ping-monitor/internal/common/logging"
	"github.com/khmm12/ping-monitor/internal/device"
)

type DeviceController interface {
	States() []device.DeviceState
	AddHost(host string) bool
	RemoveHost(host string) bool
}

type deviceView struct {
	Host         string     `json:"host"`
	Status       string     `json:"status"`
	LatencyMS    *float64   `json:"latency_ms"`
	ChangedAt    *time.Time `json:"changed_at"`
	DownNotified bool       `json:"down_notified"`
}

type addDeviceRequest struct {
	Host string `json:"host"`
}

type devicesHandler struct {
	logger  *slog.Logger
	devices DeviceController
}

func (h *devicesHandler) list(w http.ResponseWriter, r *http.Request) {
	states := h.devices.States()

	views := make([]deviceView, 0, len(states))
	for _, s := range states {
		views = append(views, toView(s))
	}

	h.writeJSON(w, r, http.StatusOK, views)
}

func (h *devicesHandler) add(w http.ResponseWriter, r *http.Request) {
	var req addDeviceRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	host := strings.TrimSpace(req.Host)
	if host == "" {
		http.Error(w, "host is required", http.StatusBadRequest)
		return
	}

	if !h.devices.AddHost(host) {
		w.WriteHeader(http.StatusOK)
		return
	}

	h.logger.InfoContext(r.Context(), "Device added via API", logging.Host(host))
	w.WriteHeader(http.StatusCreated)
}

func (h *devicesHandler) remove(w http.ResponseWriter, r *http.Request) {
	host := r.PathValue("host")

	if !h.devices.RemoveHost(host) {
		http.Error(w, "unknown host", http.StatusNotFound)
		return
	}

	h.logger.InfoContext(r.Context(), "Device removed via API", logging.Host(host))
	w.WriteHeader(http.StatusNoContent)
}

func (h *devicesHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to write response", logging.Error(err))
	}
}

func toView(s device.DeviceState) deviceView {
	v := deviceView{
		Host:         s.Host,
		Status:       s.Status.String(),
		DownNotified: s.DownNotified,
	}

	if ms, ok := s.Latency.Milliseconds(); ok {
		v.LatencyMS = &ms
	}

	if !s.ChangedAt.IsZero() {
		at := s.ChangedAt
		v.ChangedAt = &at
	}

	return v
}
