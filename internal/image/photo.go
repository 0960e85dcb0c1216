// Package image loads wall photos and saves rendered results.
package image

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"wall-meter/pkg/geometry"

	_ "golang.org/x/image/tiff"
)

// Photo is a loaded wall photograph.
type Photo struct {
	Path  string      // Original file path
	Image image.Image // Decoded image data

	rgba *image.RGBA // Lazily converted working copy
}

// Load decodes an image from the specified path.
func Load(path string) (*Photo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return &Photo{Path: path, Image: img}, nil
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image) *Photo {
	return &Photo{Image: img}
}

// Width returns the image width in pixels.
func (p *Photo) Width() int {
	if p.Image == nil {
		return 0
	}
	return p.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (p *Photo) Height() int {
	if p.Image == nil {
		return 0
	}
	return p.Image.Bounds().Dy()
}

// Size returns the image dimensions.
func (p *Photo) Size() geometry.Size {
	return geometry.Size{
		Width:  float64(p.Width()),
		Height: float64(p.Height()),
	}
}

// PixelAt returns the color at the specified pixel coordinates.
func (p *Photo) PixelAt(x, y int) color.Color {
	if p.Image == nil {
		return color.Black
	}
	bounds := p.Image.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return color.Black
	}
	return p.Image.At(x, y)
}

// RGBA returns the photo as an *image.RGBA with origin (0,0), converting
// once and caching. Pixel-level operations (warping, flood fill) all work
// on this representation.
func (p *Photo) RGBA() *image.RGBA {
	if p.rgba != nil {
		return p.rgba
	}
	p.rgba = ToRGBA(p.Image)
	return p.rgba
}

// ToRGBA converts any image to *image.RGBA rebased at the origin. The
// input is returned unchanged if it already has the right type and
// bounds.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// SavePNG writes an image as PNG.
func SavePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SaveJPEG writes an image as JPEG at the given quality (1-100).
func SaveJPEG(path string, img image.Image, quality int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return nil
}

// SupportedFormats returns the list of supported image formats.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".tif"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

// FileFilter returns a file filter string for use in file dialogs.
func FileFilter() string {
	return "Image Files (*.png, *.jpg, *.jpeg, *.tiff, *.tif)"
}
