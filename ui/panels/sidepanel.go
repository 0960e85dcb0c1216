// Package panels provides UI panels for the application.
package panels

import (
	"fmt"
	"strconv"

	"wall-meter/internal/app"
	"wall-meter/pkg/geometry"
	"wall-meter/pkg/units"
	"wall-meter/ui/canvas"
	"wall-meter/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	setupPanel    *SetupPanel
	toolsPanel    *ToolsPanel
	openingsPanel *OpeningsPanel
	resultsPanel  *ResultsPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, p *prefs.Prefs, corners *canvas.CornerCanvas, edit *canvas.EditCanvas) *SidePanel {
	sp := &SidePanel{state: state}

	sp.setupPanel = NewSetupPanel(state, p, corners)
	sp.toolsPanel = NewToolsPanel(state, p, edit)
	sp.openingsPanel = NewOpeningsPanel(state)
	sp.resultsPanel = NewResultsPanel(state, edit)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Setup", sp.setupPanel.Container()),
		container.NewTabItem("Tools", sp.toolsPanel.Container()),
		container.NewTabItem("Openings", sp.openingsPanel.Container()),
		container.NewTabItem("Results", sp.resultsPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.setupPanel.SetWindow(w)
	sp.openingsPanel.SetWindow(w)
	sp.resultsPanel.SetWindow(w)
}

// ShowTools switches to the Tools tab, used after a successful
// rectification.
func (sp *SidePanel) ShowTools() {
	sp.container.SelectIndex(1)
}

// SetupPanel handles photo loading, corner picking, and rectification.
type SetupPanel struct {
	state     *app.State
	corners   *canvas.CornerCanvas
	window    fyne.Window
	container fyne.CanvasObject

	photoLabel   *widget.Label
	cornersLabel *widget.Label
	widthEntry   *widget.Entry
	heightEntry  *widget.Entry
	unitSelect   *widget.Select
	rectifyBtn   *widget.Button
	statusLabel  *widget.Label
}

// NewSetupPanel creates a new setup panel.
func NewSetupPanel(state *app.State, pr *prefs.Prefs, corners *canvas.CornerCanvas) *SetupPanel {
	p := &SetupPanel{
		state:   state,
		corners: corners,
	}

	p.photoLabel = widget.NewLabel("No photo loaded")
	p.photoLabel.Wrapping = fyne.TextWrapWord
	p.cornersLabel = widget.NewLabel("Corners: 0 / 4")
	p.statusLabel = widget.NewLabel("")
	p.statusLabel.Wrapping = fyne.TextWrapWord

	p.widthEntry = widget.NewEntry()
	p.widthEntry.SetPlaceHolder("e.g. 5.0")
	p.heightEntry = widget.NewEntry()
	p.heightEntry.SetPlaceHolder("e.g. 3.0")

	p.unitSelect = widget.NewSelect([]string{"meters", "feet"}, func(s string) {
		pr.SetString(prefs.KeyDefaultUnit, s)
	})
	if unit := pr.String(prefs.KeyDefaultUnit); unit != "" {
		p.unitSelect.SetSelected(unit)
	} else {
		p.unitSelect.SetSelected("meters")
	}

	resetBtn := widget.NewButton("Reset Corners", func() {
		corners.Reset()
	})

	p.rectifyBtn = widget.NewButton("Rectify", func() {
		p.onRectify()
	})

	corners.OnCornersChanged(func(q geometry.Quadrilateral, complete bool) {
		p.cornersLabel.SetText(fmt.Sprintf("Corners: %d / 4", len(corners.Corners())))
		if complete {
			state.SetCorners(q)
		}
	})

	state.On(app.EventPhotoLoaded, func(data interface{}) {
		p.updatePhotoStatus()
	})

	p.container = container.NewVBox(
		widget.NewCard("Photo", "", container.NewVBox(
			p.photoLabel,
		)),
		widget.NewCard("Wall Corners", "", container.NewVBox(
			widget.NewLabel("Click the four corners in order:\ntop-left, top-right, bottom-right, bottom-left."),
			p.cornersLabel,
			resetBtn,
		)),
		widget.NewCard("Real Dimensions", "", container.NewVBox(
			widget.NewForm(
				widget.NewFormItem("Width", p.widthEntry),
				widget.NewFormItem("Height", p.heightEntry),
				widget.NewFormItem("Unit", p.unitSelect),
			),
			p.rectifyBtn,
			p.statusLabel,
		)),
	)

	return p
}

// Container returns the panel container.
func (p *SetupPanel) Container() fyne.CanvasObject {
	return p.container
}

// SetWindow sets the parent window for dialogs.
func (p *SetupPanel) SetWindow(w fyne.Window) {
	p.window = w
}

func (p *SetupPanel) updatePhotoStatus() {
	if p.state.Photo == nil {
		p.photoLabel.SetText("No photo loaded")
		return
	}
	p.photoLabel.SetText(fmt.Sprintf("%dx%d pixels", p.state.Photo.Width(), p.state.Photo.Height()))
	p.corners.SetPhoto(p.state.Photo.RGBA())
	p.cornersLabel.SetText("Corners: 0 / 4")
}

func (p *SetupPanel) onRectify() {
	width, err := strconv.ParseFloat(p.widthEntry.Text, 64)
	if err != nil {
		p.statusLabel.SetText("Invalid width")
		return
	}
	height, err := strconv.ParseFloat(p.heightEntry.Text, 64)
	if err != nil {
		p.statusLabel.SetText("Invalid height")
		return
	}
	unit, err := units.Normalize(p.unitSelect.Selected)
	if err != nil {
		p.statusLabel.SetText("Invalid unit")
		return
	}

	dims := units.RealDimensions{Width: width, Height: height, Unit: unit}
	if err := dims.Validate(); err != nil {
		p.statusLabel.SetText(err.Error())
		return
	}

	if _, ok := p.corners.Quadrilateral(); !ok {
		p.statusLabel.SetText("Pick all four corners first")
		return
	}

	p.state.SetRealDimensions(dims)

	if err := p.state.RectifyPhoto(); err != nil {
		p.statusLabel.SetText(fmt.Sprintf("Rectification failed: %v", err))
		return
	}

	out := p.state.Rectified.Image.Bounds()
	p.statusLabel.SetText(fmt.Sprintf("Rectified to %dx%d", out.Dx(), out.Dy()))
}
