// Package units provides the length units used for wall measurements and
// fixed conversions between them.
package units

import (
	"fmt"
	"strings"
)

// Unit is a linear measurement unit, stored as its short wire code.
type Unit string

const (
	Meter Unit = "m"
	Foot  Unit = "ft"
)

// FootInMeters is the exact international foot.
const FootInMeters = 0.3048

// Normalize maps long-form unit names from callers ("meters", "feet") onto
// the short codes used everywhere inside the engine. Unknown names fail so
// silent unit mix-ups cannot reach the area math.
func Normalize(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "meter", "meters", "metre", "metres":
		return Meter, nil
	case "ft", "foot", "feet":
		return Foot, nil
	}
	return "", fmt.Errorf("unknown unit %q", s)
}

// Valid reports whether u is one of the supported short codes.
func (u Unit) Valid() bool {
	return u == Meter || u == Foot
}

// LinearFactor returns the multiplier that converts a length in u into a
// length in target. ok is false when either unit is unknown, so a typo'd
// unit code never passes as a factor of one.
func LinearFactor(u, target Unit) (float64, bool) {
	if !u.Valid() || !target.Valid() {
		return 0, false
	}
	if u == target {
		return 1, true
	}
	if u == Foot && target == Meter {
		return FootInMeters, true
	}
	return 1 / FootInMeters, true
}

// AreaFactor returns the multiplier that converts an area in u² into an
// area in target².
func AreaFactor(u, target Unit) (float64, bool) {
	f, ok := LinearFactor(u, target)
	return f * f, ok
}

// ConvertLength converts a length from u to target.
func ConvertLength(v float64, u, target Unit) (float64, bool) {
	f, ok := LinearFactor(u, target)
	return v * f, ok
}

// ConvertArea converts an area from u² to target².
func ConvertArea(v float64, u, target Unit) (float64, bool) {
	f, ok := AreaFactor(u, target)
	return v * f, ok
}

// AreaLabel returns the display label for areas in this unit.
func (u Unit) AreaLabel() string {
	switch u {
	case Meter:
		return "m²"
	case Foot:
		return "ft²"
	}
	return string(u) + "²"
}
