package panels

import (
	"fmt"

	"wall-meter/internal/app"
	"wall-meter/internal/mask"
	"wall-meter/internal/vision"
	"wall-meter/ui/canvas"
	"wall-meter/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ToolsPanel selects the active mask editing tool and its parameters.
type ToolsPanel struct {
	state     *app.State
	edit      *canvas.EditCanvas
	container fyne.CanvasObject

	toolRadio     *widget.RadioGroup
	modeRadio     *widget.RadioGroup
	panCheck      *widget.Check
	brushSlider   *widget.Slider
	brushLabel    *widget.Label
	tolSlider     *widget.Slider
	tolLabel      *widget.Label
	undoBtn       *widget.Button
	redoBtn       *widget.Button
	clearBtn      *widget.Button
	detectBtn     *widget.Button
	coverageLabel *widget.Label
}

var toolNames = map[string]mask.Tool{
	"Brush":       mask.ToolBrush,
	"Rectangle":   mask.ToolRectangle,
	"Flood fill":  mask.ToolFloodFill,
	"Smart brush": mask.ToolBrushSelect,
}

// NewToolsPanel creates a new tools panel.
func NewToolsPanel(state *app.State, pr *prefs.Prefs, edit *canvas.EditCanvas) *ToolsPanel {
	p := &ToolsPanel{state: state, edit: edit}

	p.toolRadio = widget.NewRadioGroup(
		[]string{"Brush", "Rectangle", "Flood fill", "Smart brush"},
		func(selected string) {
			if e := state.Editor; e != nil {
				e.SetTool(toolNames[selected])
			}
		})
	p.toolRadio.SetSelected("Brush")

	p.modeRadio = widget.NewRadioGroup([]string{"Paint", "Erase"}, func(selected string) {
		if e := state.Editor; e != nil {
			if selected == "Erase" {
				e.SetMode(mask.ModeSubtract)
			} else {
				e.SetMode(mask.ModeAdd)
			}
		}
	})
	p.modeRadio.SetSelected("Paint")
	p.modeRadio.Horizontal = true

	p.panCheck = widget.NewCheck("Pan with drag", func(checked bool) {
		edit.SetPanMode(checked)
	})

	brushWidth := pr.FloatWithFallback(prefs.KeyBrushWidth, 24)
	p.brushLabel = widget.NewLabel(fmt.Sprintf("Brush width: %.0f px", brushWidth))
	p.brushSlider = widget.NewSlider(2, 120)
	p.brushSlider.SetValue(brushWidth)
	p.brushSlider.OnChanged = func(v float64) {
		p.brushLabel.SetText(fmt.Sprintf("Brush width: %.0f px", v))
		pr.SetFloat(prefs.KeyBrushWidth, v)
		if e := state.Editor; e != nil {
			e.SetBrushWidth(v)
			e.SetSelectRadius(v * 1.25)
		}
	}

	tolerance := pr.FloatWithFallback(prefs.KeyFloodTolerance, mask.DefaultFloodTolerance)
	p.tolLabel = widget.NewLabel(fmt.Sprintf("Color tolerance: %.0f", tolerance))
	p.tolSlider = widget.NewSlider(5, 150)
	p.tolSlider.SetValue(tolerance)
	p.tolSlider.OnChanged = func(v float64) {
		p.tolLabel.SetText(fmt.Sprintf("Color tolerance: %.0f", v))
		pr.SetFloat(prefs.KeyFloodTolerance, v)
		if e := state.Editor; e != nil {
			e.SetTolerance(v)
		}
	}

	p.undoBtn = widget.NewButton("Undo", func() {
		if e := state.Editor; e != nil {
			e.Undo()
			edit.Invalidate()
			state.MaskEdited()
		}
	})
	p.redoBtn = widget.NewButton("Redo", func() {
		if e := state.Editor; e != nil {
			e.Redo()
			edit.Invalidate()
			state.MaskEdited()
		}
	})
	p.clearBtn = widget.NewButton("Clear", func() {
		if e := state.Editor; e != nil {
			e.Clear()
			edit.Invalidate()
			state.MaskEdited()
		}
	})

	p.detectBtn = widget.NewButton("Auto-Detect Surface", func() {
		p.autoDetect()
	})

	p.coverageLabel = widget.NewLabel("Coverage: -")

	state.On(app.EventRectified, func(data interface{}) {
		p.syncEditor()
	})
	state.On(app.EventMaskChanged, func(data interface{}) {
		p.updateButtons()
	})
	state.On(app.EventAnalysisUpdated, func(data interface{}) {
		p.updateButtons()
	})

	edit.OnMaskChanged(func() {
		state.MaskEdited()
	})

	p.container = container.NewVBox(
		widget.NewCard("Tool", "", container.NewVBox(
			p.toolRadio,
			p.modeRadio,
			p.panCheck,
		)),
		widget.NewCard("Parameters", "", container.NewVBox(
			p.brushLabel,
			p.brushSlider,
			p.tolLabel,
			p.tolSlider,
		)),
		widget.NewCard("History", "", container.NewVBox(
			container.NewGridWithColumns(2, p.undoBtn, p.redoBtn),
			p.clearBtn,
		)),
		widget.NewCard("Detection", "", container.NewVBox(
			p.detectBtn,
			p.coverageLabel,
		)),
	)

	p.updateButtons()
	return p
}

// Container returns the panel container.
func (p *ToolsPanel) Container() fyne.CanvasObject {
	return p.container
}

// syncEditor pushes the panel's settings into a freshly created editing
// session.
func (p *ToolsPanel) syncEditor() {
	e := p.state.Editor
	if e == nil {
		return
	}
	e.SetTool(toolNames[p.toolRadio.Selected])
	if p.modeRadio.Selected == "Erase" {
		e.SetMode(mask.ModeSubtract)
	} else {
		e.SetMode(mask.ModeAdd)
	}
	e.SetBrushWidth(p.brushSlider.Value)
	e.SetSelectRadius(p.brushSlider.Value * 1.25)
	e.SetTolerance(p.tolSlider.Value)
	p.updateButtons()
}

func (p *ToolsPanel) updateButtons() {
	e := p.state.Editor
	if e == nil {
		p.undoBtn.Disable()
		p.redoBtn.Disable()
		p.clearBtn.Disable()
		p.detectBtn.Disable()
		p.coverageLabel.SetText("Coverage: -")
		return
	}

	p.clearBtn.Enable()
	p.detectBtn.Enable()
	if e.CanUndo() {
		p.undoBtn.Enable()
	} else {
		p.undoBtn.Disable()
	}
	if e.CanRedo() {
		p.redoBtn.Enable()
	} else {
		p.redoBtn.Disable()
	}
	p.coverageLabel.SetText(fmt.Sprintf("Coverage: %.2f%%", e.CoveragePercent()))
}

// autoDetect runs surface detection on the rectified image and applies
// the result as a single undoable mask action.
func (p *ToolsPanel) autoDetect() {
	e := p.state.Editor
	if e == nil {
		return
	}

	detected := vision.DetectSurface(e.Source(), vision.DefaultOptions())
	if !e.ApplyBitmap(detected.Bytes()) {
		return
	}
	p.edit.Invalidate()
	p.state.MaskEdited()
}
