package transcode

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// writeScript creates an executable shell script standing in for ffmpeg.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures require a unix shell")
	}
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

// drain reads the session until EOF and returns everything produced.
func drain(t *testing.T, sess *Session) []byte {
	t.Helper()
	var buf bytes.Buffer
	deadline := time.Now().Add(10 * time.Second)
	for {
		if time.Now().After(deadline) {
			t.Fatal("session did not reach EOF in time")
		}
		chunk, err := sess.Read()
		buf.Write(chunk)
		if err == io.EOF {
			return buf.Bytes()
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}
}

func TestSessionReadsOutput(t *testing.T) {
	script := writeScript(t, `printf 'transcoded-payload'`)
	sess, err := StartSession(script, nil)
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	defer sess.Close()

	got := drain(t, sess)
	if string(got) != "transcoded-payload" {
		t.Errorf("output = %q, want %q", got, "transcoded-payload")
	}

	code, stderr := sess.ExitStatus()
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty", stderr)
	}
}

func TestSessionOutputLargerThanChunk(t *testing.T) {
	// 8 KiB of output forces multiple ReadChunkSize reads.
	script := writeScript(t, `i=0; while [ $i -lt 128 ]; do printf '%064d' $i; i=$((i+1)); done`)
	sess, err := StartSession(script, nil)
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	defer sess.Close()

	got := drain(t, sess)
	if len(got) != 128*64 {
		t.Errorf("output length = %d, want %d", len(got), 128*64)
	}
}

func TestSessionNonZeroExit(t *testing.T) {
	script := writeScript(t, `printf 'partial'; echo 'codec blew up' >&2; exit 3`)
	sess, err := StartSession(script, nil)
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	defer sess.Close()

	got := drain(t, sess)
	if string(got) != "partial" {
		t.Errorf("output = %q, want %q", got, "partial")
	}

	code, stderr := sess.ExitStatus()
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if !strings.Contains(stderr, "codec blew up") {
		t.Errorf("stderr = %q, want diagnostic text", stderr)
	}
}

func TestSessionTerminate(t *testing.T) {
	script := writeScript(t, `while true; do printf 'x'; sleep 0.01; done`)
	sess, err := StartSession(script, nil)
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	defer sess.Close()

	sess.Terminate()
	sess.Terminate() // idempotent

	deadline := time.Now().Add(10 * time.Second)
	for {
		if time.Now().After(deadline) {
			t.Fatal("session did not reach EOF after Terminate")
		}
		if _, err := sess.Read(); err == io.EOF {
			break
		}
	}

	code, _ := sess.ExitStatus()
	if code == 0 {
		t.Error("killed process should not report exit code 0")
	}
}

func TestSessionCloseKillsRunningProcess(t *testing.T) {
	script := writeScript(t, `while true; do printf 'x'; sleep 0.01; done`)
	sess, err := StartSession(script, nil)
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	sess.Close()
	sess.Close() // idempotent

	if sess.cmd.ProcessState == nil {
		t.Error("Close() must reap the process")
	}
}

func TestStartSessionSpawnFailure(t *testing.T) {
	_, err := StartSession(filepath.Join(t.TempDir(), "missing"), nil)
	if err == nil {
		t.Fatal("StartSession() with missing binary should fail")
	}
}

func TestSessionArgumentsPassedAsVector(t *testing.T) {
	script := writeScript(t, `printf '%s|' "$@"`)
	sess, err := StartSession(script, []string{"-i", "/m/with space.mp4", "-sn"})
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	defer sess.Close()

	got := string(drain(t, sess))
	if got != "-i|/m/with space.mp4|-sn|" {
		t.Errorf("argv = %q, arguments must not be re-split", got)
	}
}
