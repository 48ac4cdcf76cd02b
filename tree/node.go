// Package tree provides the in-memory element tree in which object metadata
// lives. A tree is a hierarchy of namespaced, typed elements; objects are
// top-level nodes carrying a uuid attribute, with scalar attribute values and
// array indirections as children.
package tree

import "strings"

// Well-known namespace prefixes used by this layer.
const (
	SpaceModel  = "strata2"
	SpaceCommon = "eml"
	SpaceXSD    = "xsd"
	SpaceXSI    = "xsi"
)

// namespaceURIs maps prefixes to the URIs emitted in XML output.
var namespaceURIs = map[string]string{
	SpaceModel:  "http://strataform.org/schemas/strata/v2",
	SpaceCommon: "http://strataform.org/schemas/common/v2",
	SpaceXSD:    "http://www.w3.org/2001/XMLSchema",
	SpaceXSI:    "http://www.w3.org/2001/XMLSchema-instance",
}

// Node is a single element in the tree. Space and Tag identify the element;
// TypeSpace and Type carry its declared external type, when one is set.
type Node struct {
	Space     string
	Tag       string
	TypeSpace string
	Type      string
	Text      string
	Attrib    map[string]string
	Children  []*Node
}

// NewNode creates an element with the given namespace prefix and tag.
func NewNode(space, tag string) *Node {
	return &Node{
		Space:  space,
		Tag:    tag,
		Attrib: make(map[string]string),
	}
}

// SetType declares the element's external type.
func (n *Node) SetType(space, typ string) {
	n.TypeSpace = space
	n.Type = typ
}

// NodeType returns the element's declared external type, without namespace.
// It returns "" for untyped elements and nil nodes.
func (n *Node) NodeType() string {
	if n == nil {
		return ""
	}
	return n.Type
}

// Append adds a child element and returns it.
func (n *Node) Append(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// SubElement creates a typed child element with the given text, mirroring the
// shape this layer writes for scalar attribute values.
func (n *Node) SubElement(space, tag, typeSpace, typ, text string) *Node {
	child := NewNode(space, tag)
	child.SetType(typeSpace, typ)
	child.Text = text
	return n.Append(child)
}

// FindTag returns the first child whose tag matches, or nil.
func (n *Node) FindTag(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// FindNested walks a path of nested tags starting from n and returns the
// element at the end of the path, or nil if any step is missing.
func (n *Node) FindNested(path []string) *Node {
	node := n
	for _, tag := range path {
		node = node.FindTag(tag)
		if node == nil {
			return nil
		}
	}
	return node
}

// FindText returns the text of the child at the given slash-separated path,
// or "" if the path does not resolve.
func (n *Node) FindText(path string) string {
	node := n.FindNested(strings.Split(path, "/"))
	if node == nil {
		return ""
	}
	return node.Text
}
