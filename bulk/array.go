// Package bulk provides the flat keyed array store that holds an object's
// large numeric arrays, separate from the metadata tree. Arrays are cached at
// the owning-context level and written in batches.
package bulk

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies an array's element encoding.
type Kind int

const (
	// KindFloat64 is a flat array of 64-bit floats.
	KindFloat64 Kind = iota
	// KindInt64 is a flat array of 64-bit integers.
	KindInt64
	// KindPoint3 is an array of 3D points, three float64 components each.
	KindPoint3
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindFloat64:
		return "float64"
	case KindInt64:
		return "int64"
	case KindPoint3:
		return "point3"
	default:
		return "unknown"
	}
}

// Array is an immutable typed array value. Callers receiving an Array from
// the store share the cached backing slice and must copy before mutating.
type Array struct {
	kind   Kind
	floats []float64
	ints   []int64
	points [][3]float64
}

// Float64s wraps a float64 slice as an Array.
func Float64s(v []float64) Array {
	return Array{kind: KindFloat64, floats: v}
}

// Int64s wraps an int64 slice as an Array.
func Int64s(v []int64) Array {
	return Array{kind: KindInt64, ints: v}
}

// Point3s wraps a slice of 3D points as an Array.
func Point3s(v [][3]float64) Array {
	return Array{kind: KindPoint3, points: v}
}

// Kind returns the array's element encoding.
func (a Array) Kind() Kind {
	return a.kind
}

// Len returns the element count.
func (a Array) Len() int {
	switch a.kind {
	case KindFloat64:
		return len(a.floats)
	case KindInt64:
		return len(a.ints)
	case KindPoint3:
		return len(a.points)
	default:
		return 0
	}
}

// Floats returns the backing float64 slice. Valid only for KindFloat64.
func (a Array) Floats() []float64 {
	return a.floats
}

// Ints returns the backing int64 slice. Valid only for KindInt64.
func (a Array) Ints() []int64 {
	return a.ints
}

// Points returns the backing point slice. Valid only for KindPoint3.
func (a Array) Points() [][3]float64 {
	return a.points
}

// Key addresses one dataset in an external array store: the store's identity
// plus an internal path.
type Key struct {
	StoreID uuid.UUID
	Path    string
}

// DatasetPath builds the internal path for an object's array attribute.
func DatasetPath(owner uuid.UUID, tag string) string {
	return fmt.Sprintf("/strata/%s/%s", owner, tag)
}
