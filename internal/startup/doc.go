// Package startup handles configuration loading and structured startup
// logging for the media gateway.
//
// Configuration comes from environment variables: the media directory,
// listen ports, the ffmpeg location, the JIT_OPTIMIZATION policy, and
// the streaming timeout knobs. Build information (version, commit,
// build time) is injected at link time via -ldflags.
package startup
