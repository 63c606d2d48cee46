// Package handlers contains the HTTP handlers for the media gateway:
// media serving through the dispatch gate, health and readiness
// probes, version info, and the Prometheus metrics endpoint.
package handlers
