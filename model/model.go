// Package model provides the owning context for persistable objects: one
// metadata tree document paired with one bulk array store under a shared
// external store identity. The model is the resolver from identity key to
// tree node and array datasets; objects hold a reference to their model and
// never own store state themselves.
package model

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/strataform/strata/bulk"
	"github.com/strataform/strata/tree"
)

// Tags used for array indirection nodes.
const (
	// ValuesTag is the nested element under an array node that carries the
	// dataset reference.
	ValuesTag = "Values"

	pathTag     = "PathInExternalFile"
	storeRefTag = "ExternalStoreReference"
)

// Model binds a tree document and an array store under one context.
type Model struct {
	doc     *tree.Document
	store   *bulk.Store
	storeID uuid.UUID
	log     *zap.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithStore attaches a bulk array store to the model.
func WithStore(s *bulk.Store) Option {
	return func(m *Model) {
		m.store = s
	}
}

// WithStoreID fixes the model's external array store identity. Without it a
// fresh identity is generated.
func WithStoreID(id uuid.UUID) Option {
	return func(m *Model) {
		m.storeID = id
	}
}

// WithLogger attaches a logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(m *Model) {
		m.log = log
	}
}

// New creates an empty model.
func New(opts ...Option) *Model {
	m := &Model{
		doc: tree.NewDocument(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.storeID == uuid.Nil {
		m.storeID = uuid.New()
	}
	return m
}

// Document returns the model's tree document.
func (m *Model) Document() *tree.Document {
	return m.doc
}

// Store returns the model's bulk array store, which may be nil.
func (m *Model) Store() *bulk.Store {
	return m.store
}

// StoreID returns the model's external array store identity.
func (m *Model) StoreID() uuid.UUID {
	return m.storeID
}

// Logger returns the model's logger.
func (m *Model) Logger() *zap.Logger {
	return m.log
}

// ResolveNode resolves an identity to its tree node, or nil.
func (m *Model) ResolveNode(id uuid.UUID) *tree.Node {
	return m.doc.NodeForUUID(id)
}

// NewObjectNode allocates a new top-level node for a schema category.
func (m *Model) NewObjectNode(category string) *tree.Node {
	return m.doc.NewObjectNode(category)
}

// BindIdentity binds an identity to a node and indexes it.
func (m *Model) BindIdentity(node *tree.Node, id uuid.UUID) {
	m.doc.BindIdentity(node, id)
}

// IdentityForNode returns the identity bound to a node, if any.
func (m *Model) IdentityForNode(node *tree.Node) (uuid.UUID, bool) {
	return tree.IdentityForNode(node)
}

// WriteCitation writes the metadata block for an object node, stamped with
// the current time.
func (m *Model) WriteCitation(node *tree.Node, title, originator string) {
	tree.WriteCitation(node, title, originator, time.Now())
}

// CreateDatasetRef wires a dataset reference under an array indirection's
// Values node, linking the external store identity, the owning object, and
// the attribute tag. No array bytes move here; the batched commit does that.
func (m *Model) CreateDatasetRef(storeID, owner uuid.UUID, tag string, at *tree.Node) {
	at.SubElement(tree.SpaceModel, pathTag, tree.SpaceXSD, "string", bulk.DatasetPath(owner, tag))
	ref := at.SubElement(tree.SpaceModel, storeRefTag, tree.SpaceCommon, "DataObjectReference", "")
	ref.Attrib[tree.UUIDAttrib] = storeID.String()
}

// ArrayKeyForNode resolves an array indirection node to its array store key
// by reading the dataset reference under the given value tag. It reports
// false when no complete reference is present, which callers treat as an
// absent array rather than an error.
func (m *Model) ArrayKeyForNode(node *tree.Node, valueTag string) (bulk.Key, bool) {
	values := node.FindTag(valueTag)
	if values == nil {
		return bulk.Key{}, false
	}
	path := values.FindText(pathTag)
	if path == "" {
		return bulk.Key{}, false
	}
	storeID := m.storeID
	if ref := values.FindTag(storeRefTag); ref != nil {
		if id, ok := tree.IdentityForNode(ref); ok {
			storeID = id
		}
	}
	return bulk.Key{StoreID: storeID, Path: path}, true
}

// FetchCached fetches a dataset through the store's context-wide cache.
func (m *Model) FetchCached(key bulk.Key, kind bulk.Kind, owner uuid.UUID, attrName string) (bulk.Array, error) {
	if m.store == nil {
		return bulk.Array{}, fmt.Errorf("model has no array store attached")
	}
	return m.store.Fetch(key, kind, owner, attrName)
}

// SaveTree writes the model's tree document as XML.
func (m *Model) SaveTree(w io.Writer) error {
	return m.doc.Encode(w)
}

// LoadTree replaces the model's tree document with XML read from r.
func (m *Model) LoadTree(r io.Reader) error {
	return m.doc.Decode(r)
}
