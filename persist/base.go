// Package persist provides the base contract every persistable domain object
// implements: a shared identity key correlating the object's tree node and
// its array store datasets, plus the load/materialize/commit protocol that
// drives the object's declared attribute descriptors against both stores.
package persist

import (
	"fmt"
	"os/user"
	"time"

	"github.com/google/uuid"

	"github.com/strataform/strata/bulk"
	"github.com/strataform/strata/model"
	"github.com/strataform/strata/tree"
)

// Object is implemented by domain types: embed *Base and provide the schema
// type name plus the explicit field mappings the descriptors dispatch
// through.
type Object interface {
	// SchemaType names the object's schema category; it keys the descriptor
	// table and the tree node category.
	SchemaType() string

	UUID() uuid.UUID
	Root() *tree.Node
	Model() *model.Model
	Apply(key string, value any) error
	Value(key string) (any, bool)
	Array(key string) (bulk.Array, bool)

	base() *Base
}

// Base carries the persistable state shared by every domain object: owning
// model, identity key, citation metadata, and the bound tree node.
type Base struct {
	model      *model.Model
	id         uuid.UUID
	title      string
	originator string
	created    time.Time
	root       *tree.Node
	attached   bool
}

// Option configures a Base at construction.
type Option func(*Base)

// WithUUID attaches the object to an existing identity instead of generating
// a fresh one. Init then hydrates the object from the stores.
func WithUUID(id uuid.UUID) Option {
	return func(b *Base) {
		if id != uuid.Nil {
			b.id = id
			b.attached = true
		}
	}
}

// WithTitle sets the citation title.
func WithTitle(title string) Option {
	return func(b *Base) {
		b.title = title
	}
}

// WithOriginator sets the citation originator.
func WithOriginator(originator string) Option {
	return func(b *Base) {
		b.originator = originator
	}
}

// NewBase constructs the persistable state for a domain object. Without
// WithUUID a fresh identity key is generated and the object is transient: no
// tree node and no array datasets exist until Materialize.
func NewBase(m *model.Model, opts ...Option) *Base {
	b := &Base{model: m}
	for _, opt := range opts {
		opt(b)
	}
	if b.id == uuid.Nil {
		b.id = uuid.New()
	}
	return b
}

// UUID returns the object's identity key.
func (b *Base) UUID() uuid.UUID {
	return b.id
}

// Model returns the owning model.
func (b *Base) Model() *model.Model {
	return b.model
}

// Title returns the citation title.
func (b *Base) Title() string {
	return b.title
}

// SetTitle sets the citation title.
func (b *Base) SetTitle(title string) {
	b.title = title
}

// Originator returns the citation originator.
func (b *Base) Originator() string {
	return b.originator
}

// SetOriginator sets the citation originator.
func (b *Base) SetOriginator(originator string) {
	b.originator = originator
}

// Created returns the citation creation time, zero until the object has been
// materialized or hydrated.
func (b *Base) Created() time.Time {
	return b.created
}

// Root returns the object's tree node: the in-memory node when one is bound,
// otherwise whatever the model resolves for the identity. Nil when neither
// exists.
func (b *Base) Root() *tree.Node {
	if b.root != nil {
		return b.root
	}
	if b.id == uuid.Nil {
		return nil
	}
	return b.model.ResolveNode(b.id)
}

// Part returns the object's part name, derived from the node category and
// identity, or "" when no node exists.
func (b *Base) Part() string {
	node := b.Root()
	if node == nil {
		return ""
	}
	return fmt.Sprintf("%s_%s.xml", node.Tag, b.id)
}

// String returns a short human-readable description.
func (b *Base) String() string {
	return fmt.Sprintf("%s (%s)", b.title, b.id)
}

func (b *Base) base() *Base {
	return b
}

// RootNode is a legacy alias for Root.
//
// Deprecated: use Root.
func (b *Base) RootNode() *tree.Node {
	b.model.Logger().Warn("RootNode is deprecated, use Root")
	return b.Root()
}

// XMLNode is a legacy alias for Root.
//
// Deprecated: use Root.
func (b *Base) XMLNode() *tree.Node {
	b.model.Logger().Warn("XMLNode is deprecated, use Root")
	return b.Root()
}

// loginName is the originator fallback when none is held or passed.
func loginName() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "unknown"
	}
	return u.Username
}
