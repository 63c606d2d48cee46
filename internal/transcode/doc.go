// Package transcode implements the on-demand video transcoding pipeline.
//
// It covers:
//   - Typed parsing of resolution and stream-selector query parameters
//   - Compiling a request into an ffmpeg argument vector (pure, no I/O)
//   - Supervising the ffmpeg process with piped stdout and captured stderr
//   - Streaming transcoder output to the HTTP response chunk by chunk,
//     terminating the process on client disconnect
//
// Requests without a resolution are remuxed with stream copy instead of
// re-encoded. Transcoding requires ffmpeg, located via FFMPEG_PATH or
// the system PATH; a missing binary is a distinct, user-facing
// "service unavailable" condition.
package transcode
