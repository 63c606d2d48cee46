package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"media-gateway/internal/filesystem"
	"media-gateway/internal/logging"
	"media-gateway/internal/optimize"
	"media-gateway/internal/profile"
	"media-gateway/internal/transcode"

	"github.com/gorilla/mux"
)

// GetMedia serves a media file, optimizing it on the fly when the
// deployment policy enables optimization for its MIME type.
// GET /media/{path}
func (h *Handlers) GetMedia(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	filePath := vars["path"]

	if filePath == "" {
		http.Error(w, "Path is required", http.StatusBadRequest)
		return
	}

	fullPath := filepath.Join(h.mediaDir, filePath)

	// Security check
	absPath, err := filepath.Abs(fullPath)
	if err != nil || !isSubPath(h.mediaDir, absPath) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	fileInfo, err := filesystem.StatWithRetry(fullPath, filesystem.DefaultRetryConfig())
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "File not found", http.StatusNotFound)
		} else {
			logging.Error("Failed to stat file %s: %v", fullPath, err)
			http.Error(w, "Failed to access file", http.StatusInternalServerError)
		}
		return
	}
	if fileInfo.IsDir() {
		http.Error(w, "Path is a directory", http.StatusBadRequest)
		return
	}

	decision := h.gate.Route(fullPath)
	logging.Debug("Routing %s: %s", filePath, decision)

	switch decision {
	case optimize.VideoPipeline:
		h.serveVideo(w, r, fullPath)
	case optimize.ImagePipeline:
		h.serveImage(w, r, fullPath)
	default:
		http.ServeFile(w, r, fullPath)
	}
}

// serveVideo validates the transcode parameters and streams ffmpeg
// output to the client. Validation and spawn failures are rejected
// before a single byte of body is written; mid-stream failures are
// handled (and logged) inside the transcoder.
func (h *Handlers) serveVideo(w http.ResponseWriter, r *http.Request, fullPath string) {
	req, err := transcode.ParseRequest(fullPath, r.URL.Query())
	if err != nil {
		if errors.Is(err, profile.ErrUnknownProfile) || errors.Is(err, transcode.ErrInvalidParameter) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// HEAD must not spawn ffmpeg; net/http would discard the body.
	// Mirror GET's status mapping so HEAD predicts what GET would do.
	if r.Method == http.MethodHead {
		if _, err := transcode.LocateFFmpeg(h.ffmpegPath); err != nil {
			http.Error(w, "Transcoder unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", transcode.StreamMimeType)
		w.WriteHeader(http.StatusOK)
		return
	}

	err = h.transcoder.ServeStream(r.Context(), w, req)
	switch {
	case err == nil:
	case errors.Is(err, transcode.ErrExecutableNotFound):
		logging.Warn("Transcode rejected, ffmpeg not found: %s", fullPath)
		http.Error(w, "Transcoder unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, transcode.ErrSpawnFailed):
		logging.Error("Transcode failed to start for %s: %v", fullPath, err)
		http.Error(w, "Failed to start transcoder", http.StatusInternalServerError)
	default:
		// Streaming already began; the response cannot be rewritten.
		// The error was logged at critical severity by the transcoder
		// and the connection ends short.
	}
}

// serveImage runs the synchronous image optimizer and writes the whole
// re-encoded image.
func (h *Handlers) serveImage(w http.ResponseWriter, r *http.Request, fullPath string) {
	width := 0
	if raw := r.URL.Query().Get("width"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "width must be a non-negative integer", http.StatusBadRequest)
			return
		}
		width = parsed
	}

	// The optimized length is unknown without doing the work, so HEAD
	// answers with the type header alone.
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", optimize.ImageMimeType)
		w.WriteHeader(http.StatusOK)
		return
	}

	data, err := h.imageOpt.Optimize(fullPath, width)
	if err != nil {
		logging.Error("Image optimization failed for %s: %v", fullPath, err)
		http.Error(w, "Failed to optimize image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", optimize.ImageMimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		logging.Debug("Failed to write optimized image to client: %v", err)
	}
}
