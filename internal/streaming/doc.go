/*
Package streaming provides timeout-protected streaming utilities for HTTP responses.

The gateway delivers live transcoder output: a body that is produced
incrementally by a subprocess and must reach the client as it appears.
Slow or disconnected clients would otherwise hold an ffmpeg process and
a response slot indefinitely. TimeoutWriter wraps http.ResponseWriter
with per-write timeouts, idle detection, an optional absolute duration
cap, and a flush after every successful write.

Basic usage:

	tw := streaming.NewTimeoutWriter(r.Context(), w, streaming.DefaultTimeoutWriterConfig())
	defer tw.Close()

	_, err := tw.Write(chunk)
	if errors.Is(err, streaming.ErrClientGone) {
		// client disconnected, not a server error
	}

Sentinel errors distinguish the three ways a stream ends abnormally:

	ErrWriteTimeout  - a single write exceeded WriteTimeout, or the
	                   MaxDuration cap was reached
	ErrClientGone    - the request context was canceled by disconnect
	ErrStreamCanceled - the stream was closed programmatically

TimeoutWriter is safe for concurrent use; the idle checker runs in its
own goroutine and cancels the writer's context when no data has flowed
for IdleTimeout.
*/
package streaming
