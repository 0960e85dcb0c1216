// Package vision provides automatic cemented-surface detection on
// rectified wall images. It backs the "auto select" convenience; the
// result lands in the ordinary coverage mask where the user refines it by
// hand.
package vision

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"wall-meter/internal/mask"
)

// Options configures surface detection.
type Options struct {
	NumClusters       int // K-means clusters for auto-detection
	ColorTolerance    int // Tolerance for color-seeded detection
	CleanupIterations int // Morphological cleanup strength
}

// DefaultOptions returns default detection options.
func DefaultOptions() Options {
	return Options{
		NumClusters:       4,
		ColorTolerance:    40,
		CleanupIterations: 2,
	}
}

// AutoDetectSurface segments the dominant cement-like surface using
// K-means clustering in LAB color space. Cement render is neutral and
// mid-bright, so clusters are scored by low chroma and moderate
// luminance; the highest-scoring cluster becomes the mask.
func AutoDetectSurface(img gocv.Mat, numClusters int) gocv.Mat {
	if img.Empty() {
		return gocv.NewMat()
	}

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(img, &lab, gocv.ColorBGRToLab)

	// Reshape for k-means: (h*w) x 3 float32
	h, w := lab.Rows(), lab.Cols()
	pixels := gocv.NewMatWithSize(h*w, 3, gocv.MatTypeCV32F)
	defer pixels.Close()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			vec := lab.GetVecbAt(y, x)
			pixels.SetFloatAt(idx, 0, float32(vec[0]))
			pixels.SetFloatAt(idx, 1, float32(vec[1]))
			pixels.SetFloatAt(idx, 2, float32(vec[2]))
		}
	}

	labels := gocv.NewMat()
	defer labels.Close()
	centers := gocv.NewMat()
	defer centers.Close()

	criteria := gocv.NewTermCriteria(gocv.EPS+gocv.MaxIter, 100, 0.2)
	gocv.KMeans(pixels, numClusters, &labels, criteria, 10, gocv.KMeansRandomCenters, &centers)

	best := 0
	bestScore := math.Inf(-1)
	for i := 0; i < numClusters; i++ {
		l := float64(centers.GetFloatAt(i, 0))
		a := float64(centers.GetFloatAt(i, 1))
		b := float64(centers.GetFloatAt(i, 2))

		// OpenCV 8-bit LAB centers a and b on 128. Neutral grey means
		// both channels near center; extreme dark or bright clusters are
		// shadow or sky, not render.
		chroma := (math.Abs(a-128) + math.Abs(b-128)) / 256.0
		midness := 1 - math.Abs(l-128)/128.0

		score := (1 - chroma) * (0.5 + 0.5*midness)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	out := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8U)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if labels.GetIntAt(idx, 0) == int32(best) {
				out.SetUCharAt(y, x, 255)
			}
		}
	}
	return out
}

// DetectByColor segments regions matching a picked surface color using an
// HSV range around it.
func DetectByColor(img gocv.Mat, colorBGR [3]uint8, tolerance int) gocv.Mat {
	if img.Empty() {
		return gocv.NewMat()
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(img, &hsv, gocv.ColorBGRToHSV)

	colorMat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(colorBGR[0]), float64(colorBGR[1]), float64(colorBGR[2]), 0), 1, 1, gocv.MatTypeCV8UC3)
	defer colorMat.Close()

	colorHSV := gocv.NewMat()
	defer colorHSV.Close()
	gocv.CvtColor(colorMat, &colorHSV, gocv.ColorBGRToHSV)

	targetH := colorHSV.GetUCharAt(0, 0)
	targetS := colorHSV.GetUCharAt(0, 1)
	targetV := colorHSV.GetUCharAt(0, 2)

	// Hue wraps on a smaller range than the other channels.
	hTol := tolerance / 4
	lowerH := max(0, int(targetH)-hTol)
	upperH := min(179, int(targetH)+hTol)
	lowerS := max(0, int(targetS)-tolerance)
	upperS := min(255, int(targetS)+tolerance)
	lowerV := max(0, int(targetV)-tolerance)
	upperV := min(255, int(targetV)+tolerance)

	out := gocv.NewMat()
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(float64(lowerH), float64(lowerS), float64(lowerV), 0),
		gocv.NewScalar(float64(upperH), float64(upperS), float64(upperV), 0),
		&out)
	return out
}

// CleanupMask applies morphological close-then-open passes to remove pin
// holes and speckle noise from a detected mask.
func CleanupMask(m gocv.Mat, iterations int) gocv.Mat {
	if m.Empty() {
		return gocv.NewMat()
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 3, Y: 3})
	defer kernel.Close()

	cleaned := m.Clone()
	for i := 0; i < iterations; i++ {
		gocv.MorphologyEx(cleaned, &cleaned, gocv.MorphClose, kernel)
	}
	for i := 0; i < iterations; i++ {
		gocv.MorphologyEx(cleaned, &cleaned, gocv.MorphOpen, kernel)
	}
	return cleaned
}

// DetectSurface runs the full pipeline: blur, cluster, cleanup. The
// result is converted into a coverage mask sized to the input image.
func DetectSurface(src *image.RGBA, opts Options) *mask.Mask {
	m := ImageToMat(src)
	defer m.Close()
	if m.Empty() {
		return mask.New(0, 0)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(m, &blurred, image.Point{X: 5, Y: 5}, 0, 0, gocv.BorderDefault)

	detected := AutoDetectSurface(blurred, opts.NumClusters)
	defer detected.Close()

	cleaned := CleanupMask(detected, opts.CleanupIterations)
	defer cleaned.Close()

	return MatToMask(cleaned)
}

// DetectSimilar runs the color-seeded pipeline: blur, HSV range match
// around the picked RGB color, cleanup. Used when the user samples a spot
// of the render instead of trusting clustering.
func DetectSimilar(src *image.RGBA, colorRGB [3]uint8, opts Options) *mask.Mask {
	m := ImageToMat(src)
	defer m.Close()
	if m.Empty() {
		return mask.New(0, 0)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(m, &blurred, image.Point{X: 5, Y: 5}, 0, 0, gocv.BorderDefault)

	bgr := [3]uint8{colorRGB[2], colorRGB[1], colorRGB[0]}
	detected := DetectByColor(blurred, bgr, opts.ColorTolerance)
	defer detected.Close()

	cleaned := CleanupMask(detected, opts.CleanupIterations)
	defer cleaned.Close()

	return MatToMask(cleaned)
}

// ImageToMat converts a Go image to a gocv.Mat in BGR format.
func ImageToMat(img image.Image) gocv.Mat {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat
}

// MatToMask converts a single-channel binary Mat into a coverage mask.
// Any non-zero byte counts as covered.
func MatToMask(m gocv.Mat) *mask.Mask {
	rows, cols := m.Rows(), m.Cols()
	out := mask.New(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if m.GetUCharAt(y, x) != 0 {
				out.Set(x, y, true)
			}
		}
	}
	return out
}
