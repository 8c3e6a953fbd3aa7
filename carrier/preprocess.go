package carrier

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxWidth  = 1920
	DefaultMaxHeight = 1080
)

// Preprocessor normalizes a carrier before a payload is embedded.
// It must never run on a carrier that already holds a payload.
type Preprocessor interface {
	Prepare(data []byte, ext string) (out []byte, outExt string, err error)
}

// ForKind returns the preprocessor for kind.
func ForKind(kind Kind, maxWidth, maxHeight int) Preprocessor {
	if kind == Image {
		return &ImageNormalizer{MaxWidth: maxWidth, MaxHeight: maxHeight}
	}
	return Passthrough{}
}

var _ Preprocessor = Passthrough{}

// Passthrough keeps the carrier as uploaded.
type Passthrough struct{}

func (Passthrough) Prepare(data []byte, ext string) ([]byte, string, error) {
	return data, ext, nil
}

var _ Preprocessor = (*ImageNormalizer)(nil)

// ImageNormalizer decodes an image, shrinks it to fit inside
// MaxWidth x MaxHeight keeping the aspect ratio, and re-encodes it as PNG.
// Zero bounds fall back to 1920x1080.
type ImageNormalizer struct {
	MaxWidth, MaxHeight int
}

func (n *ImageNormalizer) Prepare(data []byte, _ string) ([]byte, string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	maxWidth, maxHeight := n.MaxWidth, n.MaxHeight
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}

	bounds := src.Bounds()
	width, height := fitInside(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	var dist image.Image = src
	if width != bounds.Dx() || height != bounds.Dy() {
		rgba := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(rgba, rgba.Bounds(), src, bounds, draw.Over, nil)
		dist = rgba
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dist); err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), "png", nil
}

// fitInside scales width x height down to fit the bounds. Images that
// already fit are left alone.
func fitInside(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}
	if width*maxHeight > height*maxWidth {
		h := max(height*maxWidth/width, 1)
		return maxWidth, h
	}
	w := max(width*maxHeight/height, 1)
	return w, maxHeight
}
