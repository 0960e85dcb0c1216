// Package analysis turns a coverage fraction, real wall dimensions, and a
// list of fixed openings into absolute cemented areas.
package analysis

import (
	"math"

	"wall-meter/pkg/units"
)

// Shape tags the variants of DeselectItem.
type Shape string

const (
	ShapeRect      Shape = "rect"
	ShapeCircle    Shape = "circle"
	ShapeIrregular Shape = "irregular"
)

// DeselectItem is one fixed opening (window, door) excluded from the
// cemented area. The fields used depend on Shape: Rect reads Length and
// Breadth, Circle reads Diameter, Irregular reads Area directly. Unit is
// the item's own declared unit; it is converted to the wall's unit before
// summing. For Irregular the unit is interpreted as already squared.
type DeselectItem struct {
	Shape Shape      `json:"shape"`
	Unit  units.Unit `json:"unit"`
	Count int        `json:"count"`

	Length   float64 `json:"length,omitempty"`
	Breadth  float64 `json:"breadth,omitempty"`
	Diameter float64 `json:"diameter,omitempty"`
	Area     float64 `json:"area,omitempty"`
}

// area returns the item's total contribution in the target unit. Items
// with a non-positive count contribute nothing; negative dimensions are
// clamped to zero so a half-filled form degrades to zero instead of
// producing nonsense.
func (d DeselectItem) area(target units.Unit) float64 {
	if d.Count <= 0 {
		return 0
	}

	var a float64
	switch d.Shape {
	case ShapeRect:
		a = clampNonNegative(d.Length) * clampNonNegative(d.Breadth)
	case ShapeCircle:
		r := clampNonNegative(d.Diameter) / 2
		a = math.Pi * r * r
	case ShapeIrregular:
		a = clampNonNegative(d.Area)
	default:
		return 0
	}

	converted, ok := units.ConvertArea(a, d.Unit, target)
	if !ok {
		return 0
	}
	return converted * float64(d.Count)
}

// Result is the derived area breakdown. It is a pure function of its
// inputs and is recomputed whole on every change, never patched field by
// field.
type Result struct {
	CoveragePercent       float64    `json:"coverage_percent"`
	TotalArea             float64    `json:"total_area"`
	DeselectArea          float64    `json:"deselect_area"`
	EffectiveDeselectArea float64    `json:"effective_deselect_area"`
	UsableArea            float64    `json:"usable_area"`
	CementedArea          float64    `json:"cemented_area"`
	CementedPercent       float64    `json:"cemented_percent"`
	Unit                  units.Unit `json:"unit"`
}

// Compute derives the area breakdown for a wall. coveragePercent is the
// mask's covered percentage of the rectified image; real gives the wall's
// physical size; deselections are the openings to exclude. All areas in
// the result are in real.Unit squared.
//
// Openings are clamped so they can never exceed the wall they sit on, and
// the cemented percentage is reported against the total wall area, so it
// drops below the raw coverage whenever openings are present.
func Compute(coveragePercent float64, real units.RealDimensions, deselections []DeselectItem) Result {
	totalArea := clampNonNegative(real.Width) * clampNonNegative(real.Height)

	deselectArea := 0.0
	for _, d := range deselections {
		deselectArea += d.area(real.Unit)
	}

	effective := math.Min(deselectArea, totalArea)
	usable := totalArea - effective
	cemented := usable * (coveragePercent / 100)

	cementedPercent := coveragePercent
	if totalArea > 0 {
		cementedPercent = cemented / totalArea * 100
	}

	return Result{
		CoveragePercent:       coveragePercent,
		TotalArea:             totalArea,
		DeselectArea:          deselectArea,
		EffectiveDeselectArea: effective,
		UsableArea:            usable,
		CementedArea:          cemented,
		CementedPercent:       cementedPercent,
		Unit:                  real.Unit,
	}
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
