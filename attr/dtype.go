// Package attr provides the declarative attribute-descriptor framework.
// A domain type declares each persistable field once, as data: tree
// attributes carry scalar metadata into the element tree, array attributes
// carry bulk numeric data into the array store. Descriptor tables are pure
// specification, registered per type at startup and never mutated.
package attr

import (
	"fmt"
	"strconv"

	"github.com/strataform/strata/bulk"
)

// DType is the semantic type of a declared field, used for casting on load
// and for write-time encoding.
type DType int

const (
	// TypeString is scalar text.
	TypeString DType = iota
	// TypeBool is a scalar boolean.
	TypeBool
	// TypeInt is a scalar 64-bit integer.
	TypeInt
	// TypeFloat is a scalar 64-bit float.
	TypeFloat
	// TypeFloatArray is a bulk array of float64 values.
	TypeFloatArray
	// TypeIntArray is a bulk array of int64 values.
	TypeIntArray
	// TypePoint3Array is a bulk array of 3D points.
	TypePoint3Array
)

// String returns the string representation of the dtype.
func (d DType) String() string {
	switch d {
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeFloatArray:
		return "float[]"
	case TypeIntArray:
		return "int[]"
	case TypePoint3Array:
		return "point3[]"
	default:
		return "unknown"
	}
}

// ParseDType converts a string to a DType.
func ParseDType(s string) (DType, error) {
	switch s {
	case "string":
		return TypeString, nil
	case "bool":
		return TypeBool, nil
	case "int":
		return TypeInt, nil
	case "float":
		return TypeFloat, nil
	case "float[]":
		return TypeFloatArray, nil
	case "int[]":
		return TypeIntArray, nil
	case "point3[]":
		return TypePoint3Array, nil
	default:
		return 0, fmt.Errorf("unknown dtype: %s", s)
	}
}

// IsArray reports whether the dtype is a bulk-array type.
func (d DType) IsArray() bool {
	switch d {
	case TypeFloatArray, TypeIntArray, TypePoint3Array:
		return true
	default:
		return false
	}
}

// ArrayKind maps an array dtype to its bulk store encoding.
func (d DType) ArrayKind() (bulk.Kind, bool) {
	switch d {
	case TypeFloatArray:
		return bulk.KindFloat64, true
	case TypeIntArray:
		return bulk.KindInt64, true
	case TypePoint3Array:
		return bulk.KindPoint3, true
	default:
		return 0, false
	}
}

// castValue casts element text to a dtype's in-memory form: string, bool,
// int64, or float64. Array dtypes have no text form.
func castValue(text string, d DType) (any, error) {
	switch d {
	case TypeString:
		return text, nil
	case TypeBool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to bool: %w", text, err)
		}
		return v, nil
	case TypeInt:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to int: %w", text, err)
		}
		return v, nil
	case TypeFloat:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to float: %w", text, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("dtype %s has no scalar text form", d)
	}
}
