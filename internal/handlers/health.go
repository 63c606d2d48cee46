package handlers

import (
	"net/http"
	"runtime"
	"time"

	"media-gateway/internal/startup"
	"media-gateway/internal/transcode"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	Uptime           string `json:"uptime"`
	FFmpegAvailable  bool   `json:"ffmpegAvailable"`
	ActiveTranscodes int    `json:"activeTranscodes"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service. The gateway is
// degraded, not down, when ffmpeg is missing: pass-through serving
// still works.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	_, ffmpegErr := transcode.LocateFFmpeg(h.ffmpegPath)

	response := HealthResponse{
		Version:          startup.Version,
		Uptime:           time.Since(h.startTime).Round(time.Second).String(),
		FFmpegAvailable:  ffmpegErr == nil,
		ActiveTranscodes: h.transcoder.ActiveSessions(),
		GoVersion:        runtime.Version(),
		NumCPU:           runtime.NumCPU(),
		NumGoroutine:     runtime.NumGoroutine(),
	}

	if ffmpegErr == nil {
		response.Status = statusHealthy
	} else {
		response.Status = statusDegraded
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}

// LivenessCheck reports that the process is alive.
func (h *Handlers) LivenessCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSONStatus(w, "alive")
}

// ReadinessCheck reports whether the gateway can serve traffic.
// Pass-through serving has no dependencies, so readiness does not
// track ffmpeg availability; /health carries that signal.
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSONStatus(w, "ready")
}
