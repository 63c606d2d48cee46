package optimize

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"media-gateway/internal/logging"
	"media-gateway/internal/metrics"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP decode support
)

const (
	// DefaultMaxWidth caps optimized images when no width is requested.
	DefaultMaxWidth = 1920

	// jpegQuality is the re-encode quality for optimized images.
	jpegQuality = 85
)

// ImageMimeType is the Content-Type of optimized image output. All
// optimized images are re-encoded as JPEG.
const ImageMimeType = "image/jpeg"

// ImageOptimizer re-encodes still images at a bounded width. Unlike
// the video pipeline this transform is synchronous: the whole result
// is produced before a byte is sent.
type ImageOptimizer struct {
	maxWidth int
}

// NewImageOptimizer creates an image optimizer. maxWidth <= 0 selects
// DefaultMaxWidth.
func NewImageOptimizer(maxWidth int) *ImageOptimizer {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	return &ImageOptimizer{maxWidth: maxWidth}
}

// Optimize loads the image at path, scales it down to at most width
// pixels wide (preserving aspect ratio, never upscaling), and returns
// it re-encoded as JPEG. width <= 0 selects the optimizer's default.
func (o *ImageOptimizer) Optimize(path string, width int) ([]byte, error) {
	start := time.Now()

	if width <= 0 || width > o.maxWidth {
		width = o.maxWidth
	}

	img, err := o.load(path, width)
	if err != nil {
		metrics.ImageOptimizationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		metrics.ImageOptimizationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to encode optimized image: %w", err)
	}

	metrics.ImageOptimizationsTotal.WithLabelValues("success").Inc()
	metrics.ImageOptimizationDuration.Observe(time.Since(start).Seconds())
	logging.Debug("Optimized image %s: %d bytes in %v", path, buf.Len(), time.Since(start))

	return buf.Bytes(), nil
}

// load decodes the image, preferring the vips fast path when libvips is
// available. vips shrinks during decode, which matters for very large
// sources; imaging decodes the full image first.
func (o *ImageOptimizer) load(path string, width int) (image.Image, error) {
	if IsVipsAvailable() {
		img, err := loadImageWithVips(path, width)
		if err == nil {
			return img, nil
		}
		logging.Debug("vips load failed for %s, falling back to imaging: %v", path, err)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return img, nil
}
