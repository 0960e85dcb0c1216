package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"wall-meter/pkg/units"
)

var wall = units.RealDimensions{Width: 5, Height: 3, Unit: units.Meter}

func TestComputeNoDeselections(t *testing.T) {
	r := Compute(40, wall, nil)

	require.InDelta(t, 15, r.TotalArea, 1e-9)
	require.InDelta(t, 0, r.DeselectArea, 1e-9)
	require.InDelta(t, 15, r.UsableArea, 1e-9)
	require.InDelta(t, 6, r.CementedArea, 1e-9)
	require.InDelta(t, 40, r.CementedPercent, 1e-9)
	require.Equal(t, units.Meter, r.Unit)
}

func TestComputeWithRectOpening(t *testing.T) {
	openings := []DeselectItem{
		{Shape: ShapeRect, Unit: units.Meter, Count: 2, Length: 1, Breadth: 1},
	}
	r := Compute(40, wall, openings)

	require.InDelta(t, 2, r.DeselectArea, 1e-9)
	require.InDelta(t, 2, r.EffectiveDeselectArea, 1e-9)
	require.InDelta(t, 13, r.UsableArea, 1e-9)
	require.InDelta(t, 5.2, r.CementedArea, 1e-9)
	require.InDelta(t, 34.6667, r.CementedPercent, 1e-3)
}

func TestComputeOversizedOpeningClamps(t *testing.T) {
	openings := []DeselectItem{
		{Shape: ShapeRect, Unit: units.Meter, Count: 1, Length: 10, Breadth: 10},
	}
	r := Compute(95, wall, openings)

	require.InDelta(t, 100, r.DeselectArea, 1e-9)
	require.InDelta(t, 15, r.EffectiveDeselectArea, 1e-9)
	require.InDelta(t, 0, r.UsableArea, 1e-9)
	require.InDelta(t, 0, r.CementedArea, 1e-9)
	require.InDelta(t, 0, r.CementedPercent, 1e-9)
}

func TestComputeCircleOpening(t *testing.T) {
	openings := []DeselectItem{
		{Shape: ShapeCircle, Unit: units.Meter, Count: 1, Diameter: 2},
	}
	r := Compute(100, wall, openings)
	require.InDelta(t, math.Pi, r.DeselectArea, 1e-9)
	require.InDelta(t, 15-math.Pi, r.CementedArea, 1e-9)
}

func TestComputeIrregularOpening(t *testing.T) {
	openings := []DeselectItem{
		{Shape: ShapeIrregular, Unit: units.Meter, Count: 3, Area: 0.5},
	}
	r := Compute(50, wall, openings)
	require.InDelta(t, 1.5, r.DeselectArea, 1e-9)
	require.InDelta(t, 6.75, r.CementedArea, 1e-9)
}

func TestComputeUnitConversion(t *testing.T) {
	// A 1 ft x 1 ft opening on a wall measured in meters.
	openings := []DeselectItem{
		{Shape: ShapeRect, Unit: units.Foot, Count: 1, Length: 1, Breadth: 1},
	}
	r := Compute(40, wall, openings)
	require.InDelta(t, 0.3048*0.3048, r.DeselectArea, 1e-9)

	// An irregular opening declared in ft² on the same wall: area converts
	// by the squared linear factor, same as the rect above.
	irregular := []DeselectItem{
		{Shape: ShapeIrregular, Unit: units.Foot, Count: 1, Area: 1},
	}
	r2 := Compute(40, wall, irregular)
	require.InDelta(t, r.DeselectArea, r2.DeselectArea, 1e-9)

	// A 1 m² opening on a wall measured in feet.
	ftWall := units.RealDimensions{Width: 10, Height: 8, Unit: units.Foot}
	r3 := Compute(40, ftWall, []DeselectItem{
		{Shape: ShapeRect, Unit: units.Meter, Count: 1, Length: 1, Breadth: 1},
	})
	require.InDelta(t, 1/(0.3048*0.3048), r3.DeselectArea, 1e-6)
}

func TestComputeIgnoresBadItems(t *testing.T) {
	openings := []DeselectItem{
		{Shape: ShapeRect, Unit: units.Meter, Count: 0, Length: 1, Breadth: 1},
		{Shape: ShapeRect, Unit: units.Meter, Count: -3, Length: 1, Breadth: 1},
		{Shape: ShapeRect, Unit: units.Meter, Count: 1, Length: -2, Breadth: 3},
		{Shape: ShapeCircle, Unit: units.Meter, Count: 1, Diameter: -1},
		{Shape: ShapeIrregular, Unit: units.Meter, Count: 2, Area: -4},
		{Shape: Shape("hexagon"), Unit: units.Meter, Count: 1, Length: 1, Breadth: 1},
		{Shape: ShapeRect, Unit: units.Unit("yd"), Count: 1, Length: 1, Breadth: 1},
	}
	r := Compute(40, wall, openings)
	require.InDelta(t, 0, r.DeselectArea, 1e-9)
	require.InDelta(t, 6, r.CementedArea, 1e-9)
}

func TestComputeZeroTotalAreaFallsBack(t *testing.T) {
	r := Compute(37, units.RealDimensions{Width: 0, Height: 3, Unit: units.Meter}, nil)
	require.InDelta(t, 0, r.TotalArea, 1e-9)
	require.InDelta(t, 0, r.CementedArea, 1e-9)
	require.InDelta(t, 37, r.CementedPercent, 1e-9)
}

func TestComputeCoverageExtremes(t *testing.T) {
	require.InDelta(t, 0, Compute(0, wall, nil).CementedArea, 1e-9)
	require.InDelta(t, 15, Compute(100, wall, nil).CementedArea, 1e-9)
}
