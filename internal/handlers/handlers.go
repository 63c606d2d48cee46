package handlers

import (
	"time"

	"media-gateway/internal/optimize"
	"media-gateway/internal/startup"
	"media-gateway/internal/transcode"
)

// Handlers bundles the HTTP handlers with their collaborators: the
// dispatch gate, the video transcoder, and the image optimizer.
type Handlers struct {
	gate       *optimize.Gate
	transcoder *transcode.Transcoder
	imageOpt   *optimize.ImageOptimizer
	mediaDir   string
	ffmpegPath string
	startTime  time.Time
}

// New creates the handler set from loaded configuration.
func New(config *startup.Config, trans *transcode.Transcoder) *Handlers {
	return &Handlers{
		gate:       optimize.NewGate(config.Optimization),
		transcoder: trans,
		imageOpt:   optimize.NewImageOptimizer(config.ImageMaxWidth),
		mediaDir:   config.MediaDir,
		ffmpegPath: config.FFmpegPath,
		startTime:  time.Now(),
	}
}
