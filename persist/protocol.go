package persist

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/strataform/strata/attr"
	"github.com/strataform/strata/bulk"
	"github.com/strataform/strata/tree"
)

// Init finishes construction of a domain object. Objects attached to an
// existing identity hydrate immediately; fresh objects stay transient until
// Materialize. Domain constructors call this after embedding a new Base.
func Init(obj Object) error {
	if obj.base().attached {
		return Load(obj)
	}
	return nil
}

// Load hydrates the object from both stores: the citation block from the
// node resolved by identity, then every declared descriptor in declaration
// order. A required-field failure aborts the load and propagates.
func Load(obj Object) error {
	b := obj.base()
	if b.id == uuid.Nil {
		return fmt.Errorf("cannot load %s: %w", obj.SchemaType(), attr.ErrIdentityMissing)
	}

	if node := b.model.ResolveNode(b.id); node != nil {
		b.root = node
		b.title, b.originator, b.created = tree.Citation(node)
	}

	for _, a := range attr.Lookup(obj.SchemaType()) {
		if err := a.Load(obj); err != nil {
			return fmt.Errorf("failed to load %s %s: %w", obj.SchemaType(), b.id, err)
		}
	}
	return nil
}

// MaterializeOptions carries the optional inputs to Materialize. Zero values
// fall back to state already held by the object or the model.
type MaterializeOptions struct {
	Title      string
	Originator string
	// StoreID overrides the model's external array store identity for this
	// materialization's log context; dataset references always resolve the
	// store id through the model.
	StoreID uuid.UUID
}

// Materialize creates a tree node for the object, binds its identity, writes
// the citation block, and runs every declared descriptor's write in
// declaration order. Array descriptors write indirection nodes only; the
// bytes move in CommitArrays.
//
// Every call creates a node: materializing twice with the same identity
// appends a second node rather than overwriting the first. A failure partway
// through may leave a partially-written node; callers must discard the
// object and retry.
func Materialize(obj Object, opts MaterializeOptions) error {
	b := obj.base()
	if b.id == uuid.Nil {
		return fmt.Errorf("cannot materialize %s: %w", obj.SchemaType(), attr.ErrIdentityMissing)
	}

	storeID := opts.StoreID
	if storeID == uuid.Nil {
		storeID = b.model.StoreID()
	}

	node := b.model.NewObjectNode(obj.SchemaType())
	b.model.BindIdentity(node, b.id)
	b.root = node

	if opts.Title != "" {
		b.title = opts.Title
	}
	if opts.Originator != "" {
		b.originator = opts.Originator
	}
	if b.originator == "" {
		b.originator = loginName()
	}
	b.created = time.Now()
	tree.WriteCitation(node, b.title, b.originator, b.created)

	b.model.Logger().Debug("materializing object",
		zap.String("type", obj.SchemaType()),
		zap.String("uuid", b.id.String()),
		zap.String("store_id", storeID.String()),
	)

	for _, a := range attr.Lookup(obj.SchemaType()) {
		if err := a.Write(obj); err != nil {
			return fmt.Errorf("failed to write %s %s: %w", obj.SchemaType(), b.id, err)
		}
	}
	return nil
}

// CommitArrays flushes every declared array attribute of the object to the
// array store in one batched write. Arrays with no in-memory value are
// skipped. A nil target commits to the model's store. The batch is a single
// transaction, so all of the object's arrays land as one unit.
func CommitArrays(obj Object, target *bulk.Store, mode bulk.Mode) error {
	b := obj.base()

	var arrays []attr.ArrayAttribute
	for _, a := range attr.Lookup(obj.SchemaType()) {
		if aa, ok := a.(attr.ArrayAttribute); ok {
			arrays = append(arrays, aa)
		}
	}
	if len(arrays) == 0 {
		return fmt.Errorf("%w: %s", attr.ErrNoArraysDeclared, obj.SchemaType())
	}

	reg := bulk.NewRegister(b.model.StoreID())
	for _, aa := range arrays {
		value, ok := obj.Array(aa.Key)
		if !ok {
			continue
		}
		reg.Dataset(b.id, aa.Tag, value)
	}

	if target == nil {
		target = b.model.Store()
	}
	if target == nil {
		return fmt.Errorf("cannot commit arrays for %s: model has no array store attached", obj.SchemaType())
	}
	return reg.Write(target, mode)
}

// Equal reports identity-key equality: true only when both objects hold
// non-nil identity keys and the keys match. An object with a nil identity is
// never equal to anything, including another nil-identity object.
func Equal(a, b Object) bool {
	if a == nil || b == nil {
		return false
	}
	ida, idb := a.UUID(), b.UUID()
	return ida != uuid.Nil && idb != uuid.Nil && ida == idb
}
