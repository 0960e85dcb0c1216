package panels

import (
	"fmt"
	"strings"

	"wall-meter/internal/app"
	wmimage "wall-meter/internal/image"
	"wall-meter/internal/render"
	"wall-meter/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// ResultsPanel shows the derived area breakdown and exports the painted
// result as images.
type ResultsPanel struct {
	state     *app.State
	edit      *canvas.EditCanvas
	window    fyne.Window
	container fyne.CanvasObject

	coverageLabel  *widget.Label
	totalLabel     *widget.Label
	openingsLabel  *widget.Label
	effectiveLabel *widget.Label
	usableLabel    *widget.Label
	cementedLabel  *widget.Label
	percentLabel   *widget.Label

	exportOverlayBtn *widget.Button
	exportCutoutBtn  *widget.Button
}

// NewResultsPanel creates a new results panel.
func NewResultsPanel(state *app.State, edit *canvas.EditCanvas) *ResultsPanel {
	p := &ResultsPanel{state: state, edit: edit}

	p.coverageLabel = widget.NewLabel("-")
	p.totalLabel = widget.NewLabel("-")
	p.openingsLabel = widget.NewLabel("-")
	p.effectiveLabel = widget.NewLabel("-")
	p.usableLabel = widget.NewLabel("-")
	p.cementedLabel = widget.NewLabel("-")
	p.percentLabel = widget.NewLabel("-")

	p.exportOverlayBtn = widget.NewButton("Export Overlay PNG", func() {
		p.export(false)
	})
	p.exportCutoutBtn = widget.NewButton("Export Cutout PNG", func() {
		p.export(true)
	})
	p.exportOverlayBtn.Disable()
	p.exportCutoutBtn.Disable()

	state.On(app.EventAnalysisUpdated, func(data interface{}) {
		p.update()
	})
	state.On(app.EventProjectLoaded, func(data interface{}) {
		p.update()
	})

	p.container = container.NewVBox(
		widget.NewCard("Areas", "", widget.NewForm(
			widget.NewFormItem("Painted coverage", p.coverageLabel),
			widget.NewFormItem("Total wall", p.totalLabel),
			widget.NewFormItem("Openings", p.openingsLabel),
			widget.NewFormItem("Openings (capped)", p.effectiveLabel),
			widget.NewFormItem("Usable wall", p.usableLabel),
			widget.NewFormItem("Cemented", p.cementedLabel),
			widget.NewFormItem("Cemented of total", p.percentLabel),
		)),
		widget.NewCard("Export", "", container.NewVBox(
			p.exportOverlayBtn,
			p.exportCutoutBtn,
		)),
	)

	return p
}

// Container returns the panel container.
func (p *ResultsPanel) Container() fyne.CanvasObject {
	return p.container
}

// SetWindow sets the parent window for dialogs.
func (p *ResultsPanel) SetWindow(w fyne.Window) {
	p.window = w
}

func (p *ResultsPanel) update() {
	a := p.state.Analysis
	if a == nil {
		for _, l := range []*widget.Label{
			p.coverageLabel, p.totalLabel, p.openingsLabel, p.effectiveLabel,
			p.usableLabel, p.cementedLabel, p.percentLabel,
		} {
			l.SetText("-")
		}
		p.exportOverlayBtn.Disable()
		p.exportCutoutBtn.Disable()
		return
	}

	unit := a.Unit.AreaLabel()
	p.coverageLabel.SetText(fmt.Sprintf("%.2f %%", a.CoveragePercent))
	p.totalLabel.SetText(fmt.Sprintf("%.2f %s", a.TotalArea, unit))
	p.openingsLabel.SetText(fmt.Sprintf("%.2f %s", a.DeselectArea, unit))
	p.effectiveLabel.SetText(fmt.Sprintf("%.2f %s", a.EffectiveDeselectArea, unit))
	p.usableLabel.SetText(fmt.Sprintf("%.2f %s", a.UsableArea, unit))
	p.cementedLabel.SetText(fmt.Sprintf("%.2f %s", a.CementedArea, unit))
	p.percentLabel.SetText(fmt.Sprintf("%.2f %%", a.CementedPercent))

	p.exportOverlayBtn.Enable()
	p.exportCutoutBtn.Enable()
}

// export writes the current mask rendered over (or cut out of) the
// rectified image as a PNG picked through a save dialog.
func (p *ResultsPanel) export(cutout bool) {
	e := p.state.Editor
	if e == nil || p.window == nil {
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if !strings.HasSuffix(strings.ToLower(path), ".png") {
			path += ".png"
		}

		out := render.Overlay(e.Source(), e.Mask())
		if cutout {
			out = render.Cutout(e.Source(), e.Mask())
		}
		if err := wmimage.SavePNG(path, out); err != nil {
			dialog.ShowError(err, p.window)
		}
	}, p.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	if cutout {
		fd.SetFileName("wall-cutout.png")
	} else {
		fd.SetFileName("wall-overlay.png")
	}
	fd.Show()
}
