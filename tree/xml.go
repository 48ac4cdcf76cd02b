package tree

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// typeAttrib is the attribute carrying an element's declared external type.
const typeAttrib = "type"

// Encode writes the document as XML. Namespace prefixes are declared once on
// the root element.
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := encodeNode(enc, d.root, true); err != nil {
		return fmt.Errorf("failed to encode tree: %w", err)
	}
	return enc.Flush()
}

func encodeNode(enc *xml.Encoder, n *Node, isRoot bool) error {
	start := xml.StartElement{Name: xml.Name{Local: prefixed(n.Space, n.Tag)}}

	if isRoot {
		prefixes := make([]string, 0, len(namespaceURIs))
		for prefix := range namespaceURIs {
			prefixes = append(prefixes, prefix)
		}
		sort.Strings(prefixes)
		for _, prefix := range prefixes {
			start.Attr = append(start.Attr, xml.Attr{
				Name:  xml.Name{Local: "xmlns:" + prefix},
				Value: namespaceURIs[prefix],
			})
		}
	}

	keys := make([]string, 0, len(n.Attrib))
	for k := range n.Attrib {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: k}, Value: n.Attrib[k]})
	}

	if n.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: SpaceXSI + ":" + typeAttrib},
			Value: prefixed(n.TypeSpace, n.Type),
		})
	}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.Text != "" {
		if err := enc.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		if err := encodeNode(enc, child, false); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}

// Decode replaces the document's contents with the tree read from r and
// rebuilds the identity index from the top-level object nodes.
func (d *Document) Decode(r io.Reader) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to decode tree: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		root, err := decodeNode(dec, start)
		if err != nil {
			return fmt.Errorf("failed to decode tree: %w", err)
		}
		d.root = root
		d.byUUID = make(map[uuid.UUID]*Node, len(root.Children))
		for _, node := range root.Children {
			if id, ok := IdentityForNode(node); ok {
				if _, exists := d.byUUID[id]; !exists {
					d.byUUID[id] = node
				}
			}
		}
		return nil
	}
}

func decodeNode(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	node := NewNode(prefixForURI(start.Name.Space), localName(start.Name.Local))
	for _, attr := range start.Attr {
		switch {
		case attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" || strings.HasPrefix(attr.Name.Local, "xmlns:"):
			// Namespace declarations are implied by the prefix table.
		case localName(attr.Name.Local) == typeAttrib && isTypeSpace(attr.Name.Space):
			space, typ := splitPrefixed(attr.Value)
			node.SetType(space, typ)
		default:
			node.Attrib[localName(attr.Name.Local)] = attr.Value
		}
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeNode(dec, t)
			if err != nil {
				return nil, err
			}
			node.Append(child)
		case xml.CharData:
			if text := strings.TrimSpace(string(t)); text != "" {
				node.Text += text
			}
		case xml.EndElement:
			return node, nil
		}
	}
}

func prefixed(space, name string) string {
	if space == "" {
		return name
	}
	return space + ":" + name
}

func splitPrefixed(value string) (space, name string) {
	if i := strings.Index(value, ":"); i >= 0 {
		return value[:i], value[i+1:]
	}
	return "", value
}

// localName strips any prefix the decoder left in a raw name.
func localName(raw string) string {
	_, name := splitPrefixed(raw)
	return name
}

// prefixForURI maps a resolved namespace URI (or a raw prefix, when the input
// was parsed without declarations) back to its short prefix.
func prefixForURI(space string) string {
	for prefix, uri := range namespaceURIs {
		if space == uri || space == prefix {
			return prefix
		}
	}
	return space
}

func isTypeSpace(space string) bool {
	return space == "" || space == SpaceXSI || space == namespaceURIs[SpaceXSI]
}
