// Package uom provides unit-of-measure normalization for values carried in
// tree attributes. It covers the small set of units this layer encodes
// directly: lengths and plane angles.
package uom

import (
	"fmt"
	"strings"
)

// Canonical length unit symbols.
const (
	Metre = "m"
	Foot  = "ft"
	Inch  = "in"
	Yard  = "yd"
	Mile  = "mi"
	Cm    = "cm"
	Mm    = "mm"
	Km    = "km"
)

// Canonical plane angle unit symbols.
const (
	Degrees = "dega"
	Radians = "rad"
)

// lengthAliases maps accepted spellings to canonical length unit symbols.
// Matching is case-insensitive and ignores surrounding whitespace.
var lengthAliases = map[string]string{
	"m":           Metre,
	"metre":       Metre,
	"metres":      Metre,
	"meter":       Metre,
	"meters":      Metre,
	"ft":          Foot,
	"foot":        Foot,
	"feet":        Foot,
	"in":          Inch,
	"inch":        Inch,
	"inches":      Inch,
	"yd":          Yard,
	"yard":        Yard,
	"yards":       Yard,
	"mi":          Mile,
	"mile":        Mile,
	"miles":       Mile,
	"cm":          Cm,
	"centimetre":  Cm,
	"centimetres": Cm,
	"centimeter":  Cm,
	"centimeters": Cm,
	"mm":          Mm,
	"millimetre":  Mm,
	"millimetres": Mm,
	"millimeter":  Mm,
	"millimeters": Mm,
	"km":          Km,
	"kilometre":   Km,
	"kilometres":  Km,
	"kilometer":   Km,
	"kilometers":  Km,
}

// CanonicalLengthUnit normalizes a length unit value to its canonical symbol.
// The value's natural string form is used for matching.
func CanonicalLengthUnit(value any) (string, error) {
	raw := strings.TrimSpace(fmt.Sprint(value))
	if canonical, ok := lengthAliases[strings.ToLower(raw)]; ok {
		return canonical, nil
	}
	return "", fmt.Errorf("unrecognized length unit: %q", raw)
}

// CanonicalAngleUnit normalizes a plane angle unit value. Any value whose
// textual form starts with "deg" (case-insensitive) is degrees; everything
// else is radians.
func CanonicalAngleUnit(value any) string {
	raw := strings.TrimSpace(fmt.Sprint(value))
	if strings.HasPrefix(strings.ToLower(raw), "deg") {
		return Degrees
	}
	return Radians
}
