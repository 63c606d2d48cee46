package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"media-gateway/internal/handlers"
	"media-gateway/internal/optimize"
	"media-gateway/internal/startup"
	"media-gateway/internal/streaming"
	"media-gateway/internal/transcode"
)

func newTestRouterEnv(t *testing.T) (http.Handler, string) {
	t.Helper()
	mediaDir := t.TempDir()
	config := &startup.Config{
		MediaDir:     mediaDir,
		FFmpegPath:   filepath.Join(t.TempDir(), "no-ffmpeg"),
		Optimization: optimize.ParsePolicy("video"),
		StreamConfig: streaming.DefaultTimeoutWriterConfig(),
	}
	trans := transcode.New(config.FFmpegPath, config.StreamConfig)
	h := handlers.New(config, trans)
	return setupRouter(h), mediaDir
}

func TestSetupRouterRoutes(t *testing.T) {
	router, mediaDir := newTestRouterEnv(t)
	if err := os.WriteFile(filepath.Join(mediaDir, "file.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("writing media file: %v", err)
	}

	tests := []struct {
		method string
		target string
		want   int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/healthz", http.StatusOK},
		{"GET", "/livez", http.StatusOK},
		{"GET", "/readyz", http.StatusOK},
		{"GET", "/version", http.StatusOK},
		{"GET", "/media/file.txt", http.StatusOK},
		{"GET", "/media/absent.txt", http.StatusNotFound},
		{"POST", "/media/file.txt", http.StatusMethodNotAllowed},
		{"GET", "/nonexistent", http.StatusNotFound},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
		if rec.Code != tt.want {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.target, rec.Code, tt.want)
		}
	}
}

func TestSetupRouterNestedMediaPath(t *testing.T) {
	router, mediaDir := newTestRouterEnv(t)
	nested := filepath.Join(mediaDir, "shows", "s01")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("creating nested dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(nested, "e01.txt"), []byte("episode"), 0o644); err != nil {
		t.Fatalf("writing media file: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/media/shows/s01/e01.txt", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "episode" {
		t.Errorf("body = %q, want file contents", rec.Body.String())
	}
}
