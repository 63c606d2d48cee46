package transcode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"sync"
	"time"
)

const (
	// ReadChunkSize bounds a single read from the transcoder's stdout.
	ReadChunkSize = 1024

	// startupGrace is how long a freshly spawned process is given to put
	// something in its stdout buffer before the first read. Readers must
	// still tolerate empty reads and immediate EOF.
	startupGrace = 100 * time.Millisecond
)

// Session owns one running ffmpeg process: its handle, a cursor over
// its stdout, and the captured stderr. A Session never outlives the
// HTTP response it serves; Close reaps the process and releases the
// pipes on every exit path.
type Session struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
	chunk  [ReadChunkSize]byte

	mu         sync.Mutex
	terminated bool
	waited     bool
	waitErr    error
}

// StartSession spawns ffmpeg with the compiled arguments. stdout is
// piped and read in ReadChunkSize chunks; stderr is buffered for
// inspection after exit.
func StartSession(ffmpegPath string, args []string) (*Session, error) {
	s := &Session{cmd: exec.Command(ffmpegPath, args...)}
	s.cmd.Stderr = &s.stderr

	stdout, err := s.cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	s.stdout = stdout

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	time.Sleep(startupGrace)
	return s, nil
}

// Read pulls the next chunk of transcoder output. Returns io.EOF once
// the process has exited and stdout is drained. A nil chunk with nil
// error is a legal empty read.
func (s *Session) Read() ([]byte, error) {
	n, err := s.stdout.Read(s.chunk[:])
	if n > 0 {
		return s.chunk[:n], nil
	}
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, fs.ErrClosed) || s.isTerminated() {
			s.reap()
			return nil, io.EOF
		}
		return nil, err
	}
	return nil, nil
}

// Terminate requests process termination. Idempotent; safe to call
// from a goroutine other than the reader.
func (s *Session) Terminate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminated || s.cmd.Process == nil {
		return
	}
	s.terminated = true
	_ = s.cmd.Process.Kill()
}

// ExitStatus reports the process exit code and captured stderr. It
// blocks until the process has been reaped, so call it only after Read
// returned io.EOF.
func (s *Session) ExitStatus() (int, string) {
	s.reap()
	code := -1
	if s.cmd.ProcessState != nil {
		code = s.cmd.ProcessState.ExitCode()
	}
	return code, s.stderr.String()
}

// Close releases all session resources: the process is killed if still
// running, the stdout pipe is closed, and the process is reaped. Safe
// to call multiple times and on every exit path.
func (s *Session) Close() {
	s.mu.Lock()
	waited := s.waited
	s.mu.Unlock()

	if !waited {
		s.Terminate()
	}
	_ = s.stdout.Close()
	s.reap()
}

func (s *Session) isTerminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminated
}

// reap waits for the process exactly once. cmd.Wait closes the pipe
// file descriptors, so after reap returns no descriptor is left open.
func (s *Session) reap() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.waited {
		return
	}
	s.waited = true
	s.waitErr = s.cmd.Wait()
}
