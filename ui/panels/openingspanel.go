package panels

import (
	"fmt"

	"wall-meter/internal/analysis"
	"wall-meter/internal/app"
	"wall-meter/ui/dialogs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// OpeningsPanel manages the list of fixed openings (windows, doors)
// excluded from the cemented area.
type OpeningsPanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	list      *widget.List
	addBtn    *widget.Button
	removeBtn *widget.Button
	sumLabel  *widget.Label

	selected int
}

// NewOpeningsPanel creates a new openings panel.
func NewOpeningsPanel(state *app.State) *OpeningsPanel {
	p := &OpeningsPanel{state: state, selected: -1}

	p.list = widget.NewList(
		func() int {
			return len(state.Deselections)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(state.Deselections) {
				return
			}
			obj.(*widget.Label).SetText(describeOpening(state.Deselections[id]))
		})

	p.list.OnSelected = func(id widget.ListItemID) {
		p.selected = id
		p.removeBtn.Enable()
	}
	p.list.OnUnselected = func(id widget.ListItemID) {
		p.selected = -1
		p.removeBtn.Disable()
	}

	p.addBtn = widget.NewButton("Add Opening", func() {
		if p.window == nil {
			return
		}
		dialogs.ShowAddOpening(p.window, func(item analysis.DeselectItem) {
			state.AddDeselection(item)
		})
	})

	p.removeBtn = widget.NewButton("Remove", func() {
		if p.selected < 0 {
			return
		}
		state.RemoveDeselection(p.selected)
		p.selected = -1
		p.list.UnselectAll()
		p.removeBtn.Disable()
	})
	p.removeBtn.Disable()

	p.sumLabel = widget.NewLabel("Openings total: -")

	state.On(app.EventDeselectionsChanged, func(data interface{}) {
		p.list.Refresh()
	})
	state.On(app.EventAnalysisUpdated, func(data interface{}) {
		p.updateSum()
	})
	state.On(app.EventProjectLoaded, func(data interface{}) {
		p.list.Refresh()
		p.updateSum()
	})

	p.container = container.NewBorder(
		widget.NewLabel("Windows and doors are subtracted\nfrom the wall before the cemented\narea is computed."),
		container.NewVBox(
			container.NewGridWithColumns(2, p.addBtn, p.removeBtn),
			p.sumLabel,
		),
		nil, nil,
		p.list,
	)

	return p
}

// Container returns the panel container.
func (p *OpeningsPanel) Container() fyne.CanvasObject {
	return p.container
}

// SetWindow sets the parent window for dialogs.
func (p *OpeningsPanel) SetWindow(w fyne.Window) {
	p.window = w
}

func (p *OpeningsPanel) updateSum() {
	a := p.state.Analysis
	if a == nil {
		p.sumLabel.SetText("Openings total: -")
		return
	}
	p.sumLabel.SetText(fmt.Sprintf("Openings total: %.2f %s", a.DeselectArea, a.Unit.AreaLabel()))
}

// describeOpening formats one opening for the list.
func describeOpening(d analysis.DeselectItem) string {
	switch d.Shape {
	case analysis.ShapeRect:
		return fmt.Sprintf("%dx rect %.2f x %.2f %s", d.Count, d.Length, d.Breadth, d.Unit)
	case analysis.ShapeCircle:
		return fmt.Sprintf("%dx circle d=%.2f %s", d.Count, d.Diameter, d.Unit)
	case analysis.ShapeIrregular:
		return fmt.Sprintf("%dx irregular %.2f %s", d.Count, d.Area, d.Unit.AreaLabel())
	}
	return fmt.Sprintf("%dx %s", d.Count, d.Shape)
}
