package attr

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/strataform/strata/bulk"
	"github.com/strataform/strata/model"
	"github.com/strataform/strata/tree"
	"github.com/strataform/strata/uom"
)

// External types with special-case write encodings.
const (
	XMLTypeBoolean   = "boolean"
	XMLTypeLengthUom = "LengthUom"
	XMLTypeAngleUom  = "PlaneAngleUom"
)

// Object is the surface a descriptor needs from the object it loads or
// writes: identity, tree node, owning model, and explicit field binding.
// Apply and Value replace dynamic field assignment — each domain type maps
// descriptor keys to its own typed fields.
type Object interface {
	UUID() uuid.UUID
	Root() *tree.Node
	Model() *model.Model

	// Apply binds a loaded scalar value to the field named by key. A nil
	// value marks the field absent.
	Apply(key string, value any) error

	// Value reads the current scalar value of the field named by key.
	// The second return is false when the field is absent.
	Value(key string) (any, bool)

	// Array reads the current in-memory array value of the field named by
	// key. The second return is false when no array is held.
	Array(key string) (bulk.Array, bool)
}

// Attribute is one persistable field declaration. Implementations are
// immutable value types shared across all instances of a domain type.
type Attribute interface {
	// FieldKey names the in-memory field the descriptor governs.
	FieldKey() string
	// Load hydrates the field from the external stores.
	Load(obj Object) error
	// Write persists the field into the external stores.
	Write(obj Object) error
}

// TreeAttribute declares a scalar metadata field persisted inline in the
// element tree.
//
// Tag is the field's location, a slash-separated path of nested tags for
// reads; writes support single tags only. Space and XMLType govern the
// element's declared external type; an empty XMLType makes the field
// read-only derived data that Write skips.
type TreeAttribute struct {
	Key       string
	Tag       string
	DType     DType
	Space     string
	XMLType   string
	Required  bool
	Writeable bool
}

// FieldKey returns the in-memory field name.
func (a TreeAttribute) FieldKey() string {
	return a.Key
}

// Load resolves the tag path from the object's tree node, casts the found
// text to the dtype, and applies it. Absence is fatal for required fields
// and applies nil otherwise.
func (a TreeAttribute) Load(obj Object) error {
	node := obj.Root().FindNested(strings.Split(a.Tag, "/"))
	if node == nil {
		if a.Required {
			return fmt.Errorf("%w: %s (tag %s)", ErrMissingRequiredField, a.Key, a.Tag)
		}
		return obj.Apply(a.Key, nil)
	}
	value, err := castValue(node.Text, a.DType)
	if err != nil {
		return fmt.Errorf("attribute %s: %w", a.Key, err)
	}
	return obj.Apply(a.Key, value)
}

// Write encodes the field's value and creates a typed child element under
// the object's tree node. No-op when the field is read-only, has no external
// type, or holds no value.
func (a TreeAttribute) Write(obj Object) error {
	if !a.Writeable || a.XMLType == "" {
		return nil
	}
	if strings.Contains(a.Tag, "/") {
		return fmt.Errorf("%w: %s (tag %s)", ErrNestedWriteUnsupported, a.Key, a.Tag)
	}
	node := obj.Root()
	if node == nil {
		return fmt.Errorf("attribute %s: object has no tree node", a.Key)
	}

	value, ok := obj.Value(a.Key)
	if !ok || value == nil {
		return nil
	}

	text, err := a.encode(value)
	if err != nil {
		return fmt.Errorf("attribute %s: %w", a.Key, err)
	}
	node.SubElement(tree.SpaceModel, a.Tag, a.Space, a.XMLType, text)
	return nil
}

// encode applies the external type's encoding to a value.
func (a TreeAttribute) encode(value any) (string, error) {
	switch a.XMLType {
	case XMLTypeBoolean:
		return strings.ToLower(fmt.Sprint(value)), nil
	case XMLTypeLengthUom:
		return uom.CanonicalLengthUnit(value)
	case XMLTypeAngleUom:
		return uom.CanonicalAngleUnit(value), nil
	default:
		return fmt.Sprint(value), nil
	}
}
