package units

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	for _, s := range []string{"m", "meter", "Meters", "metre", " METRES "} {
		u, err := Normalize(s)
		require.NoError(t, err)
		require.Equal(t, Meter, u)
	}
	for _, s := range []string{"ft", "Foot", "FEET"} {
		u, err := Normalize(s)
		require.NoError(t, err)
		require.Equal(t, Foot, u)
	}

	_, err := Normalize("furlong")
	require.Error(t, err)
}

func TestConversions(t *testing.T) {
	convert := func(v float64, u, target Unit) float64 {
		out, ok := ConvertLength(v, u, target)
		require.True(t, ok)
		return out
	}
	convertArea := func(v float64, u, target Unit) float64 {
		out, ok := ConvertArea(v, u, target)
		require.True(t, ok)
		return out
	}

	require.InDelta(t, 0.3048, convert(1, Foot, Meter), 1e-12)
	require.InDelta(t, 1/0.3048, convert(1, Meter, Foot), 1e-12)
	require.InDelta(t, 5.0, convert(5, Meter, Meter), 1e-12)

	// Area conversion is the square of the linear factor.
	require.InDelta(t, 0.3048*0.3048, convertArea(1, Foot, Meter), 1e-12)

	// Round trip.
	require.InDelta(t, 7.25, convertArea(convertArea(7.25, Meter, Foot), Foot, Meter), 1e-9)
}

func TestConversionRejectsUnknownUnit(t *testing.T) {
	_, ok := LinearFactor(Unit("yd"), Meter)
	require.False(t, ok)
	_, ok = LinearFactor(Meter, Unit(""))
	require.False(t, ok)
	_, ok = ConvertLength(2, Unit("furlong"), Foot)
	require.False(t, ok)
	_, ok = ConvertArea(3, Meter, Unit("yd"))
	require.False(t, ok)

	// An unknown unit is never a silent identity, not even against itself.
	_, ok = LinearFactor(Unit("yd"), Unit("yd"))
	require.False(t, ok)

	f, ok := LinearFactor(Meter, Meter)
	require.True(t, ok)
	require.Equal(t, 1.0, f)
}
