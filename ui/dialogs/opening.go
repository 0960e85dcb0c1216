// Package dialogs provides modal dialogs for the application.
package dialogs

import (
	"fmt"
	"strconv"

	"wall-meter/internal/analysis"
	"wall-meter/pkg/units"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// openingDialog collects one fixed opening to subtract from the wall.
type openingDialog struct {
	window fyne.Window
	onAdd  func(analysis.DeselectItem)

	shapeSelect   *widget.Select
	unitSelect    *widget.Select
	countEntry    *widget.Entry
	lengthEntry   *widget.Entry
	breadthEntry  *widget.Entry
	diameterEntry *widget.Entry
	areaEntry     *widget.Entry
	errorLabel    *widget.Label

	lengthItem   *widget.FormItem
	breadthItem  *widget.FormItem
	diameterItem *widget.FormItem
	areaItem     *widget.FormItem
}

// ShowAddOpening presents the add-opening dialog. onAdd is called with the
// parsed item when the user confirms with valid input.
func ShowAddOpening(window fyne.Window, onAdd func(analysis.DeselectItem)) {
	d := &openingDialog{window: window, onAdd: onAdd}
	d.build()
	d.show()
}

func (d *openingDialog) build() {
	d.shapeSelect = widget.NewSelect([]string{"Rectangle", "Circle", "Irregular"}, func(s string) {
		d.updateVisibility(s)
	})

	d.unitSelect = widget.NewSelect([]string{"meters", "feet"}, nil)
	d.unitSelect.SetSelected("meters")

	d.countEntry = widget.NewEntry()
	d.countEntry.SetText("1")

	d.lengthEntry = widget.NewEntry()
	d.lengthEntry.SetPlaceHolder("e.g. 2.0")
	d.breadthEntry = widget.NewEntry()
	d.breadthEntry.SetPlaceHolder("e.g. 1.0")
	d.diameterEntry = widget.NewEntry()
	d.diameterEntry.SetPlaceHolder("e.g. 0.6")
	d.areaEntry = widget.NewEntry()
	d.areaEntry.SetPlaceHolder("total area, already squared")

	d.errorLabel = widget.NewLabel("")
	d.errorLabel.Wrapping = fyne.TextWrapWord

	d.lengthItem = widget.NewFormItem("Length", d.lengthEntry)
	d.breadthItem = widget.NewFormItem("Breadth", d.breadthEntry)
	d.diameterItem = widget.NewFormItem("Diameter", d.diameterEntry)
	d.areaItem = widget.NewFormItem("Area", d.areaEntry)

	d.shapeSelect.SetSelected("Rectangle")
}

func (d *openingDialog) updateVisibility(shape string) {
	hideAll := func() {
		d.lengthEntry.Disable()
		d.breadthEntry.Disable()
		d.diameterEntry.Disable()
		d.areaEntry.Disable()
	}
	hideAll()
	switch shape {
	case "Rectangle":
		d.lengthEntry.Enable()
		d.breadthEntry.Enable()
	case "Circle":
		d.diameterEntry.Enable()
	case "Irregular":
		d.areaEntry.Enable()
	}
}

func (d *openingDialog) show() {
	form := widget.NewForm(
		widget.NewFormItem("Shape", d.shapeSelect),
		widget.NewFormItem("Unit", d.unitSelect),
		widget.NewFormItem("Count", d.countEntry),
		d.lengthItem,
		d.breadthItem,
		d.diameterItem,
		d.areaItem,
	)

	content := container.NewVBox(form, d.errorLabel)

	dialog.NewCustomConfirm("Add Opening", "Add", "Cancel", content,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			item, err := d.parse()
			if err != nil {
				// Reopen with the error shown; the confirm dialog has
				// already closed itself.
				d.errorLabel.SetText(err.Error())
				d.show()
				return
			}
			d.onAdd(item)
		}, d.window).Show()
}

// parse validates the form into a DeselectItem.
func (d *openingDialog) parse() (analysis.DeselectItem, error) {
	var item analysis.DeselectItem

	unit, err := units.Normalize(d.unitSelect.Selected)
	if err != nil {
		return item, err
	}
	item.Unit = unit

	count, err := strconv.Atoi(d.countEntry.Text)
	if err != nil || count < 1 {
		return item, fmt.Errorf("count must be a positive whole number")
	}
	item.Count = count

	positive := func(label, text string) (float64, error) {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || v <= 0 {
			return 0, fmt.Errorf("%s must be a positive number", label)
		}
		return v, nil
	}

	switch d.shapeSelect.Selected {
	case "Rectangle":
		item.Shape = analysis.ShapeRect
		if item.Length, err = positive("length", d.lengthEntry.Text); err != nil {
			return item, err
		}
		if item.Breadth, err = positive("breadth", d.breadthEntry.Text); err != nil {
			return item, err
		}
	case "Circle":
		item.Shape = analysis.ShapeCircle
		if item.Diameter, err = positive("diameter", d.diameterEntry.Text); err != nil {
			return item, err
		}
	case "Irregular":
		item.Shape = analysis.ShapeIrregular
		if item.Area, err = positive("area", d.areaEntry.Text); err != nil {
			return item, err
		}
	default:
		return item, fmt.Errorf("pick a shape")
	}

	return item, nil
}
