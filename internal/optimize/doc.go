// Package optimize decides whether a requested media file is served
// unmodified or transformed on the fly.
//
// The Gate inspects the file's MIME type against a per-deployment
// policy (exact MIME types plus major-type wildcards) and routes to
// the streaming video transcoder, the synchronous image optimizer, or
// plain pass-through. The image optimizer lives here too: it decodes
// (libvips when available, pure-Go imaging otherwise), caps the width,
// and re-encodes as JPEG.
package optimize
