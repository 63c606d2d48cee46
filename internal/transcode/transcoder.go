package transcode

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"media-gateway/internal/logging"
	"media-gateway/internal/metrics"
	"media-gateway/internal/streaming"
)

// ErrSpawnFailed indicates the ffmpeg process could not be started.
// Unlike mid-stream failures this happens before any byte is sent, so
// handlers can still answer with an error status.
var ErrSpawnFailed = errors.New("failed to start transcoder")

// Transcoder spawns and tracks ffmpeg sessions. Each HTTP request gets
// its own Session; the registry exists only so that in-flight processes
// can be killed on shutdown.
type Transcoder struct {
	ffmpegPath string // configured override; empty means search PATH

	sessionMu sync.Mutex
	sessions  map[*Session]string // session -> source path

	// Streaming configuration
	streamConfig streaming.TimeoutWriterConfig
}

// New creates a new Transcoder. ffmpegPath may be empty, in which case
// the binary is looked up on PATH per request.
func New(ffmpegPath string, streamConfig streaming.TimeoutWriterConfig) *Transcoder {
	return &Transcoder{
		ffmpegPath:   ffmpegPath,
		sessions:     make(map[*Session]string),
		streamConfig: streamConfig,
	}
}

// Start compiles the request into an ffmpeg invocation and spawns it.
// Returns ErrExecutableNotFound without spawning anything if ffmpeg
// cannot be located.
func (t *Transcoder) Start(req *Request) (*Session, error) {
	ffmpeg, err := LocateFFmpeg(t.ffmpegPath)
	if err != nil {
		return nil, err
	}

	args := CompileArgs(req)
	logging.Info("Running: %s %s", ffmpeg, strings.Join(args, " "))

	sess, err := StartSession(ffmpeg, args)
	if err != nil {
		metrics.TranscodeSpawnFailures.Inc()
		return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	t.sessionMu.Lock()
	t.sessions[sess] = req.SourcePath
	t.sessionMu.Unlock()
	metrics.TranscodeSessionsActive.Inc()

	return sess, nil
}

// release drops a session from the registry. Called after Close.
func (t *Transcoder) release(sess *Session) {
	t.sessionMu.Lock()
	delete(t.sessions, sess)
	t.sessionMu.Unlock()
	metrics.TranscodeSessionsActive.Dec()
}

// ActiveSessions returns the number of in-flight transcodes.
func (t *Transcoder) ActiveSessions() int {
	t.sessionMu.Lock()
	defer t.sessionMu.Unlock()
	return len(t.sessions)
}

// Cleanup kills all active transcoding processes. Called on shutdown.
func (t *Transcoder) Cleanup() {
	t.sessionMu.Lock()
	defer t.sessionMu.Unlock()

	for sess, path := range t.sessions {
		logging.Info("Killing transcoding process for: %s", path)
		sess.Terminate()
	}
}
