// Command filltest runs surface selection (flood fill, automatic
// detection, or picked-color matching) on a rectified wall image and
// reports the resulting coverage.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	wmimage "wall-meter/internal/image"
	"wall-meter/internal/mask"
	"wall-meter/internal/render"
	"wall-meter/internal/vision"
	"wall-meter/pkg/geometry"
)

func main() {
	imagePath := flag.String("image", "", "Path to rectified wall image")
	seedSpec := flag.String("seed", "", "Flood-fill seed pixel as x,y")
	tolerance := flag.Float64("tolerance", mask.DefaultFloodTolerance, "Color tolerance")
	auto := flag.Bool("auto", false, "Run automatic surface detection instead of flood fill")
	colorSpec := flag.String("color", "", "Detect regions near an r,g,b surface color instead of flood fill")
	outPath := flag.String("out", "overlay.png", "Output overlay PNG path")
	cutoutPath := flag.String("cutout", "", "Optional transparent cutout PNG path")
	flag.Parse()

	if *imagePath == "" || (*seedSpec == "" && !*auto && *colorSpec == "") {
		fmt.Println("Usage: filltest -image <path> (-seed x,y [-tolerance 40] | -auto | -color r,g,b) [-out overlay.png]")
		os.Exit(1)
	}

	photo, err := wmimage.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	src := photo.RGBA()
	fmt.Printf("Loaded image: %dx%d pixels\n", photo.Width(), photo.Height())

	var m *mask.Mask
	switch {
	case *auto:
		fmt.Println("Running automatic surface detection...")
		m = vision.DetectSurface(src, vision.DefaultOptions())
	case *colorSpec != "":
		c, err := parseColor(*colorSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad color: %v\n", err)
			os.Exit(1)
		}
		opts := vision.DefaultOptions()
		opts.ColorTolerance = int(*tolerance)
		fmt.Printf("Detecting regions near rgb(%d, %d, %d), tolerance %d\n", c[0], c[1], c[2], opts.ColorTolerance)
		m = vision.DetectSimilar(src, c, opts)
	default:
		seed, err := parseSeed(*seedSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad seed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Flood fill from (%d, %d), tolerance %.0f\n", seed.X, seed.Y, *tolerance)

		m = mask.New(photo.Width(), photo.Height())
		m.FloodFill(src, seed, *tolerance)
	}

	fmt.Printf("Covered: %d pixels (%.2f%%)\n", m.CoveredCount(), m.CoveragePercent())

	if err := wmimage.SavePNG(*outPath, render.Overlay(src, m)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outPath)

	if *cutoutPath != "" {
		if err := wmimage.SavePNG(*cutoutPath, render.Cutout(src, m)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *cutoutPath)
	}
}

func parseSeed(spec string) (geometry.PointInt, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 2 {
		return geometry.PointInt{}, fmt.Errorf("want x,y")
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return geometry.PointInt{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return geometry.PointInt{}, err
	}
	return geometry.PointInt{X: x, Y: y}, nil
}

func parseColor(spec string) ([3]uint8, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return [3]uint8{}, fmt.Errorf("want r,g,b")
	}
	var c [3]uint8
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return [3]uint8{}, err
		}
		if v < 0 || v > 255 {
			return [3]uint8{}, fmt.Errorf("channel %d out of range: %d", i, v)
		}
		c[i] = uint8(v)
	}
	return c, nil
}
