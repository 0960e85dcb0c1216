package mask

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"wall-meter/pkg/geometry"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func testEditor(t *testing.T) *Editor {
	t.Helper()
	return NewEditor(solidImage(100, 100, color.RGBA{120, 120, 120, 255}))
}

func dragRect(e *Editor, x0, y0, x1, y1 float64) {
	e.SetTool(ToolRectangle)
	e.PointerDown(geometry.Point2D{X: x0, Y: y0})
	e.PointerMove(geometry.Point2D{X: x1, Y: y1})
	e.PointerUp(geometry.Point2D{X: x1, Y: y1})
}

func TestRectangleGesture(t *testing.T) {
	e := testEditor(t)
	dragRect(e, 10, 10, 30, 25)

	require.True(t, e.CanUndo())
	require.Equal(t, 20*15, e.Mask().CoveredCount())
	require.True(t, e.Mask().At(10, 10))
	require.False(t, e.Mask().At(30, 25))
}

func TestBrushGesture(t *testing.T) {
	e := testEditor(t)
	e.SetTool(ToolBrush)
	e.SetBrushWidth(10)
	e.PointerDown(geometry.Point2D{X: 20, Y: 50})
	e.PointerMove(geometry.Point2D{X: 40, Y: 50})
	e.PointerMove(geometry.Point2D{X: 60, Y: 50})
	e.PointerUp(geometry.Point2D{X: 60, Y: 50})

	require.True(t, e.CanUndo())
	require.True(t, e.Mask().At(40, 50))
	require.False(t, e.Mask().At(40, 80))

	actions := e.Actions()
	require.Len(t, actions, 1)
	require.Equal(t, ActionBrush, actions[0].Kind)
	require.InDelta(t, 10, actions[0].StrokeWidth, 1e-9)
}

func TestBrushWidthScalesWithView(t *testing.T) {
	e := testEditor(t)
	e.SetTool(ToolBrush)
	e.SetBrushWidth(20)
	e.SetViewScale(2)
	e.PointerDown(geometry.Point2D{X: 20, Y: 50})
	e.PointerMove(geometry.Point2D{X: 60, Y: 50})
	e.PointerUp(geometry.Point2D{X: 60, Y: 50})

	// 20 view pixels at 2x zoom is 10 image pixels.
	actions := e.Actions()
	require.Len(t, actions, 1)
	require.InDelta(t, 10, actions[0].StrokeWidth, 1e-9)
	require.True(t, e.Mask().At(40, 50))
	require.True(t, e.Mask().At(40, 54))
	require.False(t, e.Mask().At(40, 60))
}

func TestUndoRedoExact(t *testing.T) {
	e := testEditor(t)
	dragRect(e, 10, 10, 40, 40)
	afterFirst := e.Mask().Clone()

	e.SetTool(ToolFloodFill)
	e.PointerDown(geometry.Point2D{X: 70, Y: 70})
	afterSecond := e.Mask().Clone()
	require.False(t, afterFirst.Equal(e.Mask()))

	e.Undo()
	require.True(t, afterFirst.Equal(e.Mask()))
	require.True(t, e.CanRedo())

	e.Redo()
	require.True(t, afterSecond.Equal(e.Mask()))
	require.False(t, e.CanRedo())

	e.Undo()
	e.Undo()
	require.Equal(t, 0, e.Mask().CoveredCount())
	require.False(t, e.CanUndo())

	e.Redo()
	e.Redo()
	require.True(t, afterSecond.Equal(e.Mask()))
}

func TestNewActionTruncatesRedo(t *testing.T) {
	e := testEditor(t)
	dragRect(e, 0, 0, 10, 10)
	dragRect(e, 20, 20, 30, 30)

	e.Undo()
	require.True(t, e.CanRedo())

	dragRect(e, 50, 50, 60, 60)
	require.False(t, e.CanRedo())

	actions := e.Actions()
	require.Len(t, actions, 2)
	require.InDelta(t, 50, actions[1].Rect.X, 1e-9)
}

func TestClearIsUndoable(t *testing.T) {
	e := testEditor(t)
	dragRect(e, 10, 10, 40, 40)
	before := e.Mask().Clone()

	e.Clear()
	require.Equal(t, 0, e.Mask().CoveredCount())

	e.Undo()
	require.True(t, before.Equal(e.Mask()))
}

func TestClearThenReplayReproduces(t *testing.T) {
	e := testEditor(t)
	dragRect(e, 10, 10, 40, 40)
	e.SetTool(ToolBrush)
	e.SetBrushWidth(8)
	e.PointerDown(geometry.Point2D{X: 60, Y: 20})
	e.PointerMove(geometry.Point2D{X: 60, Y: 60})
	e.PointerUp(geometry.Point2D{X: 60, Y: 60})
	want := e.Mask().Clone()

	log := e.Actions()
	e.Clear()
	require.Equal(t, 0, e.Mask().CoveredCount())

	e.Replay(log)
	require.True(t, want.Equal(e.Mask()))
}

func TestReplayOnFreshEditor(t *testing.T) {
	src := solidImage(100, 100, color.RGBA{120, 120, 120, 255})
	e := NewEditor(src)
	dragRect(e, 5, 5, 35, 45)
	e.SetTool(ToolFloodFill)
	e.PointerDown(geometry.Point2D{X: 80, Y: 80})
	want := e.Mask().Clone()

	restored := NewEditor(src)
	restored.Replay(e.Actions())
	require.True(t, want.Equal(restored.Mask()))
	require.True(t, restored.CanUndo())
}

func TestRestoreMaskBitmap(t *testing.T) {
	e := testEditor(t)
	dragRect(e, 10, 10, 20, 20)
	data := e.Mask().Bytes()

	restored := testEditor(t)
	require.True(t, restored.RestoreMask(data))
	require.True(t, e.Mask().Equal(restored.Mask()))
	require.False(t, restored.CanUndo())

	require.False(t, restored.RestoreMask([]byte{1}))
}

func TestApplyBitmapUndoableAndReplayable(t *testing.T) {
	e := testEditor(t)
	dragRect(e, 10, 10, 20, 20)
	before := e.Mask().Clone()

	detected := New(100, 100)
	detected.Set(70, 70, true)
	detected.Set(71, 70, true)

	require.True(t, e.ApplyBitmap(detected.Bytes()))
	require.True(t, detected.Equal(e.Mask()))

	e.Undo()
	require.True(t, before.Equal(e.Mask()))

	e.Redo()
	restored := testEditor(t)
	restored.Replay(e.Actions())
	require.True(t, detected.Equal(restored.Mask()))

	require.False(t, e.ApplyBitmap([]byte{1, 2, 3}))
}

func TestDegenerateGesturesDiscarded(t *testing.T) {
	e := testEditor(t)

	// Single-point brush click.
	e.SetTool(ToolBrush)
	e.PointerDown(geometry.Point2D{X: 50, Y: 50})
	e.PointerUp(geometry.Point2D{X: 50, Y: 50})
	require.False(t, e.CanUndo())
	require.Equal(t, 0, e.Mask().CoveredCount())

	// Zero-area rectangle.
	dragRect(e, 30, 30, 30, 30)
	require.False(t, e.CanUndo())
	require.Equal(t, 0, e.Mask().CoveredCount())
}

func TestOutOfBoundsPointerDownIgnored(t *testing.T) {
	e := testEditor(t)
	e.SetTool(ToolBrush)
	e.PointerDown(geometry.Point2D{X: -5, Y: 50})
	require.False(t, e.Authoring())

	e.SetTool(ToolFloodFill)
	e.PointerDown(geometry.Point2D{X: 50, Y: 200})
	require.False(t, e.CanUndo())
	require.Equal(t, 0, e.Mask().CoveredCount())
}

func TestPanDiscardsInProgressStroke(t *testing.T) {
	e := testEditor(t)
	e.SetTool(ToolBrush)
	e.PointerDown(geometry.Point2D{X: 20, Y: 20})
	e.PointerMove(geometry.Point2D{X: 40, Y: 20})

	e.BeginPan()
	require.Equal(t, 0, e.Mask().CoveredCount())
	require.False(t, e.CanUndo())

	e.EndPan()
	require.False(t, e.Authoring())
}

func TestFloodFillSingleShot(t *testing.T) {
	e := testEditor(t)
	e.SetTool(ToolFloodFill)
	e.PointerDown(geometry.Point2D{X: 50, Y: 50})
	require.False(t, e.Authoring())
	require.Equal(t, 100*100, e.Mask().CoveredCount())
	require.True(t, e.CanUndo())
}

func TestRectanglePreview(t *testing.T) {
	e := testEditor(t)
	e.SetTool(ToolRectangle)
	_, ok := e.PreviewRect()
	require.False(t, ok)

	e.PointerDown(geometry.Point2D{X: 10, Y: 10})
	e.PointerMove(geometry.Point2D{X: 500, Y: 40})

	r, ok := e.PreviewRect()
	require.True(t, ok)
	require.InDelta(t, 100, r.X+r.Width, 1e-9) // clamped to the image edge
	require.Equal(t, 0, e.Mask().CoveredCount())

	e.PointerUp(geometry.Point2D{X: 500, Y: 40})
	_, ok = e.PreviewRect()
	require.False(t, ok)
	require.True(t, e.Mask().At(50, 20))
}

func TestSubtractMode(t *testing.T) {
	e := testEditor(t)
	dragRect(e, 0, 0, 100, 100)
	require.Equal(t, 100*100, e.Mask().CoveredCount())

	e.SetMode(ModeSubtract)
	dragRect(e, 20, 20, 40, 40)
	require.Equal(t, 100*100-400, e.Mask().CoveredCount())
	require.False(t, e.Mask().At(30, 30))
	require.InDelta(t, 96, e.CoveragePercent(), 1e-9)
}
