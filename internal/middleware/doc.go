// Package middleware provides HTTP middleware for the media gateway.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request instrumentation
//   - Response compression (gzip) that bypasses streaming media routes
package middleware
