package transcode

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"media-gateway/internal/streaming"
)

func newTestTranscoder(ffmpegPath string) *Transcoder {
	return New(ffmpegPath, streaming.DefaultTimeoutWriterConfig())
}

func TestServeStreamMissingExecutable(t *testing.T) {
	trans := newTestTranscoder(filepath.Join(t.TempDir(), "no-ffmpeg"))
	rec := httptest.NewRecorder()

	err := trans.ServeStream(context.Background(), rec, &Request{SourcePath: "/m/v.mp4"})
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Fatalf("error = %v, want ErrExecutableNotFound", err)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body length = %d, nothing must be written before spawn", rec.Body.Len())
	}
	if got := trans.ActiveSessions(); got != 0 {
		t.Errorf("ActiveSessions() = %d, want 0", got)
	}
}

func TestServeStreamSpawnFailure(t *testing.T) {
	// A directory passes the existence check but cannot be executed.
	trans := newTestTranscoder(t.TempDir())
	rec := httptest.NewRecorder()

	err := trans.ServeStream(context.Background(), rec, &Request{SourcePath: "/m/v.mp4"})
	if !errors.Is(err, ErrSpawnFailed) {
		t.Fatalf("error = %v, want ErrSpawnFailed", err)
	}
	if got := trans.ActiveSessions(); got != 0 {
		t.Errorf("ActiveSessions() = %d, want 0", got)
	}
}

func TestServeStreamDeliversOutput(t *testing.T) {
	script := writeScript(t, `printf 'mpegts-bytes-here'`)
	trans := newTestTranscoder(script)
	rec := httptest.NewRecorder()

	err := trans.ServeStream(context.Background(), rec, &Request{SourcePath: "/m/v.mp4"})
	if err != nil {
		t.Fatalf("ServeStream() error = %v", err)
	}
	if got := rec.Body.String(); got != "mpegts-bytes-here" {
		t.Errorf("body = %q, want %q", got, "mpegts-bytes-here")
	}
	if ct := rec.Header().Get("Content-Type"); ct != StreamMimeType {
		t.Errorf("Content-Type = %q, want %q", ct, StreamMimeType)
	}
	if got := trans.ActiveSessions(); got != 0 {
		t.Errorf("ActiveSessions() = %d after completion, want 0", got)
	}
}

func TestServeStreamNonZeroExitAfterOutput(t *testing.T) {
	// Once bytes have been sent the response stands; a late ffmpeg
	// failure is logged, not surfaced.
	script := writeScript(t, `printf 'good-bytes'; echo 'late failure' >&2; exit 1`)
	trans := newTestTranscoder(script)
	rec := httptest.NewRecorder()

	err := trans.ServeStream(context.Background(), rec, &Request{SourcePath: "/m/v.mp4"})
	if err != nil {
		t.Fatalf("ServeStream() error = %v, non-zero exit must not fail the response", err)
	}
	if got := rec.Body.String(); got != "good-bytes" {
		t.Errorf("body = %q, want %q", got, "good-bytes")
	}
}

func TestServeStreamClientDisconnect(t *testing.T) {
	script := writeScript(t, `while true; do printf 'x'; sleep 0.01; done`)
	trans := newTestTranscoder(script)
	rec := httptest.NewRecorder()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() {
		done <- trans.ServeStream(ctx, rec, &Request{SourcePath: "/m/v.mp4"})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ServeStream() error = %v, cancellation must end quietly", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("ServeStream() did not return after context cancellation")
	}

	if got := trans.ActiveSessions(); got != 0 {
		t.Errorf("ActiveSessions() = %d after disconnect, want 0", got)
	}
}

func TestCleanupKillsSessions(t *testing.T) {
	script := writeScript(t, `while true; do printf 'x'; sleep 0.01; done`)
	trans := newTestTranscoder(script)

	sess, err := trans.Start(&Request{SourcePath: "/m/v.mp4"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		sess.Close()
		trans.release(sess)
	}()

	if got := trans.ActiveSessions(); got != 1 {
		t.Fatalf("ActiveSessions() = %d, want 1", got)
	}

	trans.Cleanup()

	if !sess.isTerminated() {
		t.Error("Cleanup() must terminate active sessions")
	}
}

func TestStartRunsCompiledArguments(t *testing.T) {
	script := writeScript(t, `printf '%s|' "$@"`)
	trans := newTestTranscoder(script)

	req := &Request{SourcePath: "/m/v.mp4"}
	sess, err := trans.Start(req)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		sess.Close()
		trans.release(sess)
	}()

	got := string(drain(t, sess))
	want := strings.Join(CompileArgs(req), "|") + "|"
	if got != want {
		t.Errorf("process argv = %q, want %q", got, want)
	}
}
