package mask

import (
	"image"

	"wall-meter/pkg/geometry"
)

// Tool selects the active authoring operation.
type Tool int

const (
	ToolBrush Tool = iota
	ToolRectangle
	ToolFloodFill
	ToolBrushSelect
)

// phase is the editor's pointer state.
type phase int

const (
	phaseIdle phase = iota
	phaseAuthoring
	phasePanning
)

// Editor runs one mask editing session over a rectified image. It owns the
// coverage mask for the lifetime of the session, drives the pointer state
// machine, and keeps the action log that backs undo/redo and session
// restore.
//
// Undo and redo replay the action log from an empty mask: every painting
// primitive is integer-deterministic, so replay is bit-for-bit exact.
type Editor struct {
	src  *image.RGBA
	mask *Mask

	// actions[:applied] are reflected in the mask; the tail past applied
	// is the redo run, invalidated by the next new action.
	actions []Action
	applied int

	tool      Tool
	mode      Mode
	tolerance float64

	// brushWidth and selectRadius are view-space pixels; viewScale
	// converts them to image space so brush size is visually stable
	// under zoom.
	brushWidth   float64
	selectRadius float64
	viewScale    float64

	phase       phase
	stroke      []geometry.Point2D
	strokeWidth float64 // image-space, frozen at stroke start
	rectAnchor  geometry.Point2D
	rectCurrent geometry.Rect
	hasPreview  bool
}

// NewEditor starts an editing session over the rectified image. The mask
// starts empty and is sized to the image.
func NewEditor(src *image.RGBA) *Editor {
	b := src.Bounds()
	return &Editor{
		src:          src,
		mask:         New(b.Dx(), b.Dy()),
		tool:         ToolBrush,
		mode:         ModeAdd,
		tolerance:    DefaultFloodTolerance,
		brushWidth:   24,
		selectRadius: 30,
		viewScale:    1,
	}
}

// Mask returns the live coverage mask. Read-only for callers.
func (e *Editor) Mask() *Mask { return e.mask }

// Source returns the rectified image the session edits over.
func (e *Editor) Source() *image.RGBA { return e.src }

// CoveragePercent returns the current covered percentage of the mask.
func (e *Editor) CoveragePercent() float64 { return e.mask.CoveragePercent() }

// SetTool selects the authoring tool. Ignored mid-gesture.
func (e *Editor) SetTool(t Tool) {
	if e.phase == phaseIdle {
		e.tool = t
	}
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetMode switches between painting and erasing.
func (e *Editor) SetMode(m Mode) { e.mode = m }

// SetBrushWidth sets the brush width in view-space pixels.
func (e *Editor) SetBrushWidth(w float64) { e.brushWidth = w }

// SetSelectRadius sets the color-aware brush radius in view-space pixels.
func (e *Editor) SetSelectRadius(r float64) { e.selectRadius = r }

// SetTolerance sets the flood-fill color tolerance.
func (e *Editor) SetTolerance(t float64) { e.tolerance = t }

// SetViewScale records the current view transform scale so view-space
// brush sizes convert to image space.
func (e *Editor) SetViewScale(s float64) {
	if s > 0 {
		e.viewScale = s
	}
}

// PreviewRect returns the in-progress rectangle, if one is being dragged
// out. The UI renders it dashed; nothing touches the mask until release.
func (e *Editor) PreviewRect() (geometry.Rect, bool) {
	return e.rectCurrent.Normalized(), e.hasPreview
}

// Authoring reports whether a paint gesture is in progress.
func (e *Editor) Authoring() bool { return e.phase == phaseAuthoring }

// PointerDown starts an authoring gesture at an image-space point.
// Points outside the mask bounds do not start anything. Flood fill is
// single-shot: it commits immediately and returns to idle.
func (e *Editor) PointerDown(p geometry.Point2D) {
	if e.phase != phaseIdle {
		return
	}
	if !e.mask.InBounds(int(p.X), int(p.Y)) {
		return
	}

	switch e.tool {
	case ToolFloodFill:
		seed := geometry.PointInt{X: int(p.X), Y: int(p.Y)}
		e.commit(Action{
			Kind:      ActionFloodFill,
			Seed:      &seed,
			Tolerance: e.tolerance,
		})

	case ToolBrush:
		e.phase = phaseAuthoring
		e.strokeWidth = e.brushWidth / e.viewScale
		e.stroke = []geometry.Point2D{p}
		// Live feedback: the cap is painted right away; a no-movement
		// click is reverted on release.
		e.mask.PaintStroke(e.stroke, e.strokeWidth, e.mode)

	case ToolBrushSelect:
		e.phase = phaseAuthoring
		e.stroke = []geometry.Point2D{p}
		radius := e.selectRadius / e.viewScale
		e.strokeWidth = radius
		e.mask.BrushSelect(e.src, geometry.PointInt{X: int(p.X), Y: int(p.Y)}, radius, e.tolerance, e.mode)

	case ToolRectangle:
		e.phase = phaseAuthoring
		e.rectAnchor = p
		e.rectCurrent = geometry.Rect{X: p.X, Y: p.Y}
		e.hasPreview = true
	}
}

// PointerMove extends the in-progress gesture. Out-of-bounds points do
// not extend a stroke; rectangle corners are clamped to the image.
func (e *Editor) PointerMove(p geometry.Point2D) {
	if e.phase != phaseAuthoring {
		return
	}

	switch e.tool {
	case ToolBrush:
		if !e.mask.InBounds(int(p.X), int(p.Y)) {
			return
		}
		last := e.stroke[len(e.stroke)-1]
		e.stroke = append(e.stroke, p)
		e.mask.PaintStroke([]geometry.Point2D{last, p}, e.strokeWidth, e.mode)

	case ToolBrushSelect:
		if !e.mask.InBounds(int(p.X), int(p.Y)) {
			return
		}
		e.stroke = append(e.stroke, p)
		e.mask.BrushSelect(e.src, geometry.PointInt{X: int(p.X), Y: int(p.Y)}, e.strokeWidth, e.tolerance, e.mode)

	case ToolRectangle:
		cp := e.clampToImage(p)
		e.rectCurrent = geometry.Rect{
			X:      e.rectAnchor.X,
			Y:      e.rectAnchor.Y,
			Width:  cp.X - e.rectAnchor.X,
			Height: cp.Y - e.rectAnchor.Y,
		}
	}
}

// PointerUp finalizes the gesture. Degenerate gestures (single-point
// brush stroke, zero-area rectangle) are discarded without touching the
// history; the mask is rebuilt to drop any live-feedback paint.
func (e *Editor) PointerUp(p geometry.Point2D) {
	if e.phase != phaseAuthoring {
		return
	}
	e.phase = phaseIdle

	switch e.tool {
	case ToolBrush:
		if e.mask.InBounds(int(p.X), int(p.Y)) && p != e.stroke[len(e.stroke)-1] {
			last := e.stroke[len(e.stroke)-1]
			e.stroke = append(e.stroke, p)
			e.mask.PaintStroke([]geometry.Point2D{last, p}, e.strokeWidth, e.mode)
		}
		if len(e.stroke) < 2 {
			e.rebuild()
			e.stroke = nil
			return
		}
		e.commitPainted(Action{
			Kind:        ActionBrush,
			Mode:        e.mode,
			Points:      e.stroke,
			StrokeWidth: e.strokeWidth,
		})
		e.stroke = nil

	case ToolBrushSelect:
		e.commitPainted(Action{
			Kind:      ActionBrushSelect,
			Mode:      e.mode,
			Points:    e.stroke,
			Tolerance: e.tolerance,
			Radius:    e.strokeWidth,
		})
		e.stroke = nil

	case ToolRectangle:
		e.hasPreview = false
		rect := e.rectCurrent.Normalized()
		if rect.Width <= 0 || rect.Height <= 0 {
			return
		}
		e.commit(Action{Kind: ActionRectangle, Mode: e.mode, Rect: &rect})
	}
}

// BeginPan switches into panning, discarding any in-progress authoring:
// a second pointer or a held modifier means the user wants to move the
// view, not paint.
func (e *Editor) BeginPan() {
	if e.phase == phaseAuthoring {
		e.rebuild()
		e.stroke = nil
		e.hasPreview = false
	}
	e.phase = phasePanning
}

// EndPan returns to idle after a pan gesture.
func (e *Editor) EndPan() {
	if e.phase == phasePanning {
		e.phase = phaseIdle
	}
}

// Undo steps one action back. No-op on an empty history.
func (e *Editor) Undo() {
	if e.phase != phaseIdle || e.applied == 0 {
		return
	}
	e.applied--
	e.rebuild()
}

// Redo re-applies the most recently undone action. No-op when there is
// nothing to redo.
func (e *Editor) Redo() {
	if e.phase != phaseIdle || e.applied >= len(e.actions) {
		return
	}
	e.actions[e.applied].apply(e.mask, e.src)
	e.applied++
}

// CanUndo reports whether Undo would change anything.
func (e *Editor) CanUndo() bool { return e.applied > 0 }

// CanRedo reports whether Redo would change anything.
func (e *Editor) CanRedo() bool { return e.applied < len(e.actions) }

// ApplyBitmap replaces the mask content with a detected bitmap as a
// single undoable action. The data must match the mask dimensions.
func (e *Editor) ApplyBitmap(data []byte) bool {
	if e.phase != phaseIdle || len(data) != e.mask.Width*e.mask.Height {
		return false
	}
	e.commit(Action{Kind: ActionBitmap, Data: data})
	return true
}

// Clear empties the mask as a single undoable action.
func (e *Editor) Clear() {
	if e.phase != phaseIdle {
		return
	}
	e.commit(Action{Kind: ActionClear})
}

// Actions returns a copy of the applied action log, suitable for session
// persistence and deterministic replay.
func (e *Editor) Actions() []Action {
	out := make([]Action, e.applied)
	copy(out, e.actions[:e.applied])
	return out
}

// Replay replaces the session's history with the given actions and
// rebuilds the mask from scratch. Used for session restore.
func (e *Editor) Replay(actions []Action) {
	e.actions = make([]Action, len(actions))
	copy(e.actions, actions)
	e.applied = len(e.actions)
	e.phase = phaseIdle
	e.stroke = nil
	e.hasPreview = false
	e.rebuild()
}

// RestoreMask loads a serialized pixel mask directly, bypassing the
// action log (the alternate session-restore path). The history is emptied
// because a raw bitmap cannot be replayed.
func (e *Editor) RestoreMask(data []byte) bool {
	if !e.mask.SetBytes(data) {
		return false
	}
	e.actions = nil
	e.applied = 0
	return true
}

// commit applies a new action and appends it to the history, dropping any
// redo tail.
func (e *Editor) commit(a Action) {
	a.apply(e.mask, e.src)
	e.commitPainted(a)
}

// commitPainted appends an action whose effect is already in the mask
// (live-feedback gestures paint as they go).
func (e *Editor) commitPainted(a Action) {
	e.actions = append(e.actions[:e.applied], a)
	e.applied = len(e.actions)
}

// rebuild replays actions[:applied] from an empty mask.
func (e *Editor) rebuild() {
	e.mask.Reset()
	for _, a := range e.actions[:e.applied] {
		a.apply(e.mask, e.src)
	}
}

func (e *Editor) clampToImage(p geometry.Point2D) geometry.Point2D {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.X > float64(e.mask.Width) {
		p.X = float64(e.mask.Width)
	}
	if p.Y > float64(e.mask.Height) {
		p.Y = float64(e.mask.Height)
	}
	return p
}
