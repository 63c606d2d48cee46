package transcode

import (
	"context"
	"errors"
	"io"
	"net/http"

	"media-gateway/internal/logging"
	"media-gateway/internal/metrics"
	"media-gateway/internal/streaming"
)

// StreamMimeType is the Content-Type of transcoded output. The mpegts
// container is used for both the re-encode and the copy path because
// the output is a live pipe, not a seekable file.
const StreamMimeType = "video/mpeg"

// ServeStream spawns ffmpeg for the request and streams its stdout to
// the client chunk by chunk, without buffering the body.
//
// Errors returned here occurred before any byte was written, so the
// caller can still send an error status (ErrExecutableNotFound maps to
// 503). Once streaming has begun the policy is to deliver whatever was
// produced: client disconnects and slow-client timeouts end the stream
// quietly, and a non-zero ffmpeg exit after valid output is logged but
// does not fail the response. Unexpected I/O failures are logged at
// critical severity and returned.
func (t *Transcoder) ServeStream(ctx context.Context, w http.ResponseWriter, req *Request) error {
	sess, err := t.Start(req)
	if err != nil {
		return err
	}
	defer func() {
		sess.Close()
		t.release(sess)
	}()

	w.Header().Set("Content-Type", StreamMimeType)
	w.Header().Set("Transfer-Encoding", "chunked")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	tw := streaming.NewTimeoutWriter(ctx, w, t.streamConfig)
	defer func() {
		if err := tw.Close(); err != nil {
			logging.Warn("Failed to close timeout writer: %v", err)
		}
	}()

	for {
		// Client disconnects must stop ffmpeg within one read cycle.
		select {
		case <-ctx.Done():
			sess.Terminate()
			logging.Debug("Client disconnected, terminated transcode for %s", req.SourcePath)
			metrics.TranscodeSessionsTotal.WithLabelValues(metrics.OutcomeCanceled).Inc()
			return nil
		default:
		}

		chunk, readErr := sess.Read()
		if len(chunk) > 0 {
			if _, werr := tw.Write(chunk); werr != nil {
				sess.Terminate()
				if errors.Is(werr, streaming.ErrClientGone) || errors.Is(werr, streaming.ErrStreamCanceled) {
					logging.Debug("Stream ended: %v for %s", werr, req.SourcePath)
					metrics.TranscodeSessionsTotal.WithLabelValues(metrics.OutcomeCanceled).Inc()
					return nil
				}
				if errors.Is(werr, streaming.ErrWriteTimeout) {
					logging.Warn("Slow client, terminated transcode for %s", req.SourcePath)
					metrics.TranscodeSessionsTotal.WithLabelValues(metrics.OutcomeCanceled).Inc()
					return nil
				}
				logging.Critical("Stream write failed for %s: %v", req.SourcePath, werr)
				metrics.TranscodeSessionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
				return werr
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			sess.Terminate()
			logging.Critical("Reading transcoder output failed for %s: %v", req.SourcePath, readErr)
			metrics.TranscodeSessionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
			return readErr
		}
	}

	bytesWritten, duration := tw.Stats()
	metrics.TranscodeBytesStreamed.Add(float64(bytesWritten))

	// ffmpeg can exit non-zero for benign reasons after producing a
	// valid stream. Bytes already sent stand, so log and report success.
	if code, stderr := sess.ExitStatus(); code != 0 {
		logging.Error("ffmpeg exited with status %d for %s:\n%s", code, req.SourcePath, stderr)
		metrics.TranscodeSessionsTotal.WithLabelValues(metrics.OutcomeAbnormalExit).Inc()
	} else {
		logging.Debug("Transcode completed: %d bytes in %v for %s", bytesWritten, duration, req.SourcePath)
		metrics.TranscodeSessionsTotal.WithLabelValues(metrics.OutcomeCompleted).Inc()
	}

	return nil
}
