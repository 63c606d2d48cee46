//go:build !cgo

package optimize

import (
	"fmt"
	"image"
)

// govips needs cgo, so without it libvips is never available and the
// optimizer always takes the pure-Go imaging path (see image.go).

// InitVips initializes the libvips library.
// This should be called once at startup.
func InitVips() error {
	return fmt.Errorf("libvips support requires cgo (built with CGO_ENABLED=0)")
}

// ShutdownVips cleans up libvips resources
func ShutdownVips() {}

// IsVipsAvailable returns whether libvips is initialized and available
func IsVipsAvailable() bool { return false }

// loadImageWithVips loads an image with decode-time shrinking to at most
// width pixels wide. Much more memory efficient than decoding the full
// image and resizing afterwards.
func loadImageWithVips(path string, width int) (image.Image, error) {
	return nil, fmt.Errorf("libvips not available")
}
