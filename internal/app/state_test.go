package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"wall-meter/internal/analysis"
	"wall-meter/internal/mask"
	"wall-meter/pkg/geometry"
	"wall-meter/pkg/units"
)

func writeTestPhoto(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 200, 160))
	for y := 0; y < 160; y++ {
		for x := 0; x < 200; x++ {
			img.SetRGBA(x, y, color.RGBA{140, 140, 140, 255})
		}
	}
	path := filepath.Join(dir, "wall.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func fullFrameCorners() geometry.Quadrilateral {
	return geometry.Quadrilateral{
		TopLeft:     geometry.Point2D{X: 0, Y: 0},
		TopRight:    geometry.Point2D{X: 199, Y: 0},
		BottomRight: geometry.Point2D{X: 199, Y: 159},
		BottomLeft:  geometry.Point2D{X: 0, Y: 159},
	}
}

func TestRectifyPhotoRequiresInputs(t *testing.T) {
	s := NewState()
	require.Error(t, s.RectifyPhoto())

	path := writeTestPhoto(t, t.TempDir())
	require.NoError(t, s.LoadPhoto(path))
	require.Error(t, s.RectifyPhoto()) // still no corners
}

func TestRectifyPhotoStartsSession(t *testing.T) {
	s := NewState()
	require.NoError(t, s.LoadPhoto(writeTestPhoto(t, t.TempDir())))
	s.SetCorners(fullFrameCorners())
	s.SetRealDimensions(units.RealDimensions{Width: 5, Height: 4, Unit: units.Meter})

	var rectified, analyzed bool
	s.On(EventRectified, func(interface{}) { rectified = true })
	s.On(EventAnalysisUpdated, func(interface{}) { analyzed = true })

	require.NoError(t, s.RectifyPhoto())
	require.True(t, rectified)
	require.True(t, analyzed)
	require.NotNil(t, s.Editor)
	require.Equal(t, 800, s.Rectified.Image.Bounds().Dy())
	require.NotNil(t, s.Analysis)
	require.InDelta(t, 20, s.Analysis.TotalArea, 1e-9)
}

func TestDeselectionsRecompute(t *testing.T) {
	s := NewState()
	require.NoError(t, s.LoadPhoto(writeTestPhoto(t, t.TempDir())))
	s.SetCorners(fullFrameCorners())
	s.SetRealDimensions(units.RealDimensions{Width: 5, Height: 3, Unit: units.Meter})
	require.NoError(t, s.RectifyPhoto())

	s.AddDeselection(analysis.DeselectItem{
		Shape: analysis.ShapeRect, Unit: units.Meter, Count: 2, Length: 1, Breadth: 1,
	})
	require.InDelta(t, 2, s.Analysis.DeselectArea, 1e-9)
	require.InDelta(t, 13, s.Analysis.UsableArea, 1e-9)

	s.RemoveDeselection(0)
	require.InDelta(t, 0, s.Analysis.DeselectArea, 1e-9)

	// Removing a bad index is a no-op.
	s.RemoveDeselection(5)
}

func TestProjectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPhoto(t, dir)

	s := NewState()
	require.NoError(t, s.LoadPhoto(path))
	s.SetCorners(fullFrameCorners())
	s.SetRealDimensions(units.RealDimensions{Width: 5, Height: 4, Unit: units.Meter})
	require.NoError(t, s.RectifyPhoto())

	// Paint something so the action log is non-empty.
	e := s.Editor
	e.SetTool(mask.ToolRectangle)
	e.PointerDown(geometry.Point2D{X: 100, Y: 100})
	e.PointerMove(geometry.Point2D{X: 400, Y: 500})
	e.PointerUp(geometry.Point2D{X: 400, Y: 500})
	s.MaskEdited()

	s.AddDeselection(analysis.DeselectItem{
		Shape: analysis.ShapeCircle, Unit: units.Foot, Count: 1, Diameter: 2,
	})
	wantMask := e.Mask().Clone()
	wantAnalysis := *s.Analysis

	projPath := filepath.Join(dir, "session.wallproj")
	require.NoError(t, s.SaveProject(projPath))
	require.False(t, s.Modified)

	restored := NewState()
	require.NoError(t, restored.LoadProject(projPath))

	require.NotNil(t, restored.Editor)
	require.True(t, wantMask.Equal(restored.Editor.Mask()))
	require.True(t, restored.Editor.CanUndo())
	require.Len(t, restored.Deselections, 1)
	require.NotNil(t, restored.Analysis)
	require.InDelta(t, wantAnalysis.CementedArea, restored.Analysis.CementedArea, 1e-9)
	require.InDelta(t, wantAnalysis.CementedPercent, restored.Analysis.CementedPercent, 1e-9)
	require.False(t, restored.Modified)
}

func TestLoadProjectBadFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.wallproj")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))

	s := NewState()
	require.Error(t, s.LoadProject(bad))
	require.Error(t, s.LoadProject(filepath.Join(dir, "missing.wallproj")))
}
