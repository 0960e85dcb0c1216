// Command rectifytest runs perspective rectification on a wall photo and
// writes the fronto-parallel result.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	wmimage "wall-meter/internal/image"
	"wall-meter/internal/rectify"
	"wall-meter/pkg/geometry"
	"wall-meter/pkg/units"
)

func main() {
	imagePath := flag.String("image", "", "Path to wall photo (TIFF, PNG, or JPEG)")
	cornerSpec := flag.String("corners", "", "Corner pixels as x1,y1,x2,y2,x3,y3,x4,y4 (TL,TR,BR,BL)")
	width := flag.Float64("width", 0, "Real wall width")
	height := flag.Float64("height", 0, "Real wall height")
	unitName := flag.String("unit", "m", "Measurement unit: m or ft")
	outPath := flag.String("out", "rectified.png", "Output PNG path")
	flag.Parse()

	if *imagePath == "" || *cornerSpec == "" || *width <= 0 || *height <= 0 {
		fmt.Println("Usage: rectifytest -image <path> -corners x1,y1,...,x4,y4 -width <w> -height <h> [-unit m|ft] [-out rectified.png]")
		os.Exit(1)
	}

	unit, err := units.Normalize(*unitName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	quad, err := parseCorners(*cornerSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad corners: %v\n", err)
		os.Exit(1)
	}

	photo, err := wmimage.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded image: %dx%d pixels\n", photo.Width(), photo.Height())

	real := units.RealDimensions{Width: *width, Height: *height, Unit: unit}
	fmt.Printf("Wall: %.2f x %.2f %s (aspect %.3f)\n", real.Width, real.Height, real.Unit, real.AspectRatio())

	result, err := rectify.Rectify(photo.RGBA(), quad, real)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Rectification failed: %v\n", err)
		os.Exit(1)
	}

	b := result.Image.Bounds()
	fmt.Printf("Rectified output: %dx%d pixels\n", b.Dx(), b.Dy())

	if err := wmimage.SavePNG(*outPath, result.Image); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outPath)
}

// parseCorners parses eight comma-separated numbers into a quadrilateral
// in TL,TR,BR,BL order.
func parseCorners(spec string) (geometry.Quadrilateral, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 8 {
		return geometry.Quadrilateral{}, fmt.Errorf("want 8 numbers, got %d", len(parts))
	}

	vals := make([]float64, 8)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Quadrilateral{}, err
		}
		vals[i] = v
	}

	return geometry.Quadrilateral{
		TopLeft:     geometry.Point2D{X: vals[0], Y: vals[1]},
		TopRight:    geometry.Point2D{X: vals[2], Y: vals[3]},
		BottomRight: geometry.Point2D{X: vals[4], Y: vals[5]},
		BottomLeft:  geometry.Point2D{X: vals[6], Y: vals[7]},
	}, nil
}
