// Package metrics defines Prometheus metrics for the media gateway.
//
// Metrics cover the HTTP surface (request counts, durations, in-flight
// gauge), the transcoding pipeline (active sessions, outcomes, bytes
// streamed, spawn failures), and the image optimizer.
package metrics
