package attr

import (
	"fmt"

	"github.com/strataform/strata/bulk"
	"github.com/strataform/strata/model"
	"github.com/strataform/strata/tree"
)

// Recognized bulk-array storage encodings, declared as the external type of
// an array indirection node.
const (
	EncodingDoubleArray  = "DoubleExternalArray"
	EncodingIntegerArray = "IntegerExternalArray"
	EncodingPoint3dArray = "Point3dExternalArray"

	// datasetType is the declared type of the nested Values node that holds
	// the dataset reference.
	datasetType = "ExternalDataset"
)

func recognizedEncoding(nodeType string) bool {
	switch nodeType {
	case EncodingDoubleArray, EncodingIntegerArray, EncodingPoint3dArray:
		return true
	default:
		return false
	}
}

// ArrayAttribute declares a bulk numeric field persisted in the array store,
// referenced from the tree via an indirection node at Tag. The array value is
// never bound onto the object: loads populate the model's context-wide cache,
// and the object reads from it by convention. Arrays may be large and shared
// between objects resolving the same identity, so cached values are
// shared-read.
type ArrayAttribute struct {
	Key       string
	Tag       string
	DType     DType
	Space     string
	XMLType   string
	Required  bool
	Writeable bool
}

// FieldKey returns the in-memory field name.
func (a ArrayAttribute) FieldKey() string {
	return a.Key
}

// Load locates the indirection node, validates its storage encoding, and
// fetches the dataset into the store's cache. A node with no resolvable
// dataset reference, or a reference with no committed bytes, is treated as
// an absent array, not an error.
func (a ArrayAttribute) Load(obj Object) error {
	node := obj.Root().FindTag(a.Tag)
	if node == nil {
		if a.Required {
			return fmt.Errorf("%w: %s (tag %s)", ErrMissingRequiredField, a.Key, a.Tag)
		}
		return nil
	}
	if !recognizedEncoding(node.NodeType()) {
		return fmt.Errorf("%w: %s declares %q", ErrUnsupportedArrayEncoding, a.Key, node.NodeType())
	}

	kind, ok := a.DType.ArrayKind()
	if !ok {
		return fmt.Errorf("attribute %s: dtype %s is not an array dtype", a.Key, a.DType)
	}

	m := obj.Model()
	key, resolvable := m.ArrayKeyForNode(node, model.ValuesTag)
	if !resolvable {
		return nil
	}

	if _, err := m.FetchCached(key, kind, obj.UUID(), a.Key); err != nil {
		if bulk.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("attribute %s: %w", a.Key, err)
	}
	return nil
}

// Write creates the indirection node and its nested Values dataset reference.
// Array bytes do not move here; the batched commit transfers them.
func (a ArrayAttribute) Write(obj Object) error {
	if !a.Writeable || a.XMLType == "" {
		return nil
	}
	node := obj.Root()
	if node == nil {
		return fmt.Errorf("attribute %s: object has no tree node", a.Key)
	}

	m := obj.Model()
	arrayNode := node.SubElement(tree.SpaceModel, a.Tag, a.Space, a.XMLType, "")
	values := arrayNode.SubElement(tree.SpaceModel, model.ValuesTag, tree.SpaceModel, datasetType, "")
	m.CreateDatasetRef(m.StoreID(), obj.UUID(), a.Tag, values)
	return nil
}
