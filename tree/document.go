package tree

import (
	"time"

	"github.com/google/uuid"
)

// Attribute names carried on object nodes.
const (
	UUIDAttrib          = "uuid"
	SchemaVersionAttrib = "schemaVersion"
)

// SchemaVersion is stamped on every object node this layer creates.
const SchemaVersion = "2.0"

// Citation block tags.
const (
	citationTag   = "Citation"
	titleTag      = "Title"
	originatorTag = "Originator"
	creationTag   = "Creation"
)

// Document is a tree of object nodes under a single root, with an index from
// identity to node. The index tracks the first node bound to each identity;
// later bindings of the same identity append nodes without re-indexing.
type Document struct {
	root   *Node
	byUUID map[uuid.UUID]*Node
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		root:   NewNode(SpaceModel, "Objects"),
		byUUID: make(map[uuid.UUID]*Node),
	}
}

// Root returns the document's root element.
func (d *Document) Root() *Node {
	return d.root
}

// Objects returns the document's top-level object nodes in creation order.
func (d *Document) Objects() []*Node {
	return d.root.Children
}

// NewObjectNode allocates a top-level node for the given schema category and
// appends it to the document. The node carries the schema version; its
// identity attribute is bound separately.
func (d *Document) NewObjectNode(category string) *Node {
	node := NewNode(SpaceModel, "obj_"+category)
	node.Attrib[SchemaVersionAttrib] = SchemaVersion
	return d.root.Append(node)
}

// BindIdentity sets the node's uuid attribute and indexes it. The first node
// bound to an identity wins the index slot.
func (d *Document) BindIdentity(node *Node, id uuid.UUID) {
	node.Attrib[UUIDAttrib] = id.String()
	if _, exists := d.byUUID[id]; !exists {
		d.byUUID[id] = node
	}
}

// NodeForUUID resolves an identity to its tree node, or nil.
func (d *Document) NodeForUUID(id uuid.UUID) *Node {
	return d.byUUID[id]
}

// IdentityForNode returns the identity bound to a node, if any.
func IdentityForNode(node *Node) (uuid.UUID, bool) {
	if node == nil {
		return uuid.Nil, false
	}
	raw, ok := node.Attrib[UUIDAttrib]
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// WriteCitation writes the metadata block under an object node: title,
// originator, and creation timestamp.
func WriteCitation(node *Node, title, originator string, at time.Time) {
	citation := node.Append(NewNode(SpaceModel, citationTag))
	citation.SetType(SpaceCommon, citationTag)
	citation.SubElement(SpaceModel, titleTag, SpaceXSD, "string", title)
	citation.SubElement(SpaceModel, originatorTag, SpaceXSD, "string", originator)
	citation.SubElement(SpaceModel, creationTag, SpaceXSD, "dateTime", at.UTC().Format(time.RFC3339))
}

// Citation reads the metadata block from an object node. Missing elements
// yield zero values.
func Citation(node *Node) (title, originator string, created time.Time) {
	citation := node.FindTag(citationTag)
	if citation == nil {
		return "", "", time.Time{}
	}
	title = citation.FindText(titleTag)
	originator = citation.FindText(originatorTag)
	if raw := citation.FindText(creationTag); raw != "" {
		created, _ = time.Parse(time.RFC3339, raw)
	}
	return title, originator, created
}
