package attr

import "errors"

// Failure modes of the descriptor framework. All are fatal and synchronous;
// this layer performs no silent recovery and no partial-write rollback.
var (
	// ErrMissingRequiredField is returned when a required descriptor finds no
	// value during load.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrIdentityMissing is returned when materialize is attempted on an
	// object with no bound identity.
	ErrIdentityMissing = errors.New("object has no identity key")

	// ErrNestedWriteUnsupported is returned when a tree attribute declares a
	// nested path but a write was attempted. Nested paths support reads only;
	// hitting this is a schema declaration bug.
	ErrNestedWriteUnsupported = errors.New("nested tag paths cannot be written")

	// ErrUnsupportedArrayEncoding is returned when an array node exists but
	// declares an unrecognized storage encoding.
	ErrUnsupportedArrayEncoding = errors.New("unsupported array encoding")

	// ErrNoArraysDeclared is returned when an array commit is requested for a
	// type that declares no array attributes.
	ErrNoArraysDeclared = errors.New("type declares no array attributes")
)

// IsMissingRequiredField returns true if the error is ErrMissingRequiredField.
func IsMissingRequiredField(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

// IsIdentityMissing returns true if the error is ErrIdentityMissing.
func IsIdentityMissing(err error) bool {
	return errors.Is(err, ErrIdentityMissing)
}

// IsUnsupportedArrayEncoding returns true if the error is ErrUnsupportedArrayEncoding.
func IsUnsupportedArrayEncoding(err error) bool {
	return errors.Is(err, ErrUnsupportedArrayEncoding)
}
