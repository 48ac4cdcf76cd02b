package uom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalLengthUnit(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"canonical symbol", "m", "m"},
		{"british spelling", "metres", "m"},
		{"american spelling", "meters", "m"},
		{"mixed case", "Feet", "ft"},
		{"whitespace", "  ft  ", "ft"},
		{"kilometres", "kilometres", "km"},
		{"inches", "inches", "in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalLengthUnit(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalLengthUnitUnknown(t *testing.T) {
	_, err := CanonicalLengthUnit("furlongs")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "furlongs")
}

func TestCanonicalAngleUnit(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"degrees", "degrees", "dega"},
		{"deg", "deg", "dega"},
		{"uppercase", "DEGREES", "dega"},
		{"dega passthrough", "dega", "dega"},
		{"radians", "radians", "rad"},
		{"rad", "rad", "rad"},
		{"anything else", "gradians", "rad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalAngleUnit(tt.value))
		})
	}
}
