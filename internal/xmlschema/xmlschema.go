// Package xmlschema is the XML Access Layer: it wraps github.com/beevik/etree
// to give the rest of the compiler a small, synthesis-friendly view over a
// parsed SBE schema document — ordered attribute dictionaries, text
// extraction, tag-filtered child iteration, and construction of new element
// nodes for padding, implicit builtins, and the synthesized message-id enum.
package xmlschema

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// Attr is a single attribute, preserving declaration order the way the
// source XML wrote it.
type Attr struct {
	Name  string
	Value string
}

// AttrDict is the ordered attribute dictionary of a single element.
type AttrDict []Attr

// Get looks up an attribute by name.
func (d AttrDict) Get(name string) (string, bool) {
	for _, a := range d {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Node is a thin, read-focused (and synthesis-capable) view over one
// etree.Element.
type Node struct {
	el *etree.Element
}

// WrapElement adapts a raw etree element into a Node.
func WrapElement(el *etree.Element) *Node {
	if el == nil {
		return nil
	}
	return &Node{el: el}
}

// Tag returns the element's tag name.
func (n *Node) Tag() string {
	return n.el.Tag
}

// Attrs returns the element's attributes in declaration order.
func (n *Node) Attrs() AttrDict {
	attrs := n.el.Attr
	out := make(AttrDict, len(attrs))
	for i, a := range attrs {
		out[i] = Attr{Name: a.Key, Value: a.Value}
	}
	return out
}

// Attr looks up a single attribute by name.
func (n *Node) Attr(name string) (string, bool) {
	return n.Attrs().Get(name)
}

// Text returns the element's direct text content as written, without
// trimming surrounding whitespace.
func (n *Node) Text() string {
	return n.el.Text()
}

// Children returns the ordered list of child elements. When tags is
// non-empty, only children whose tag matches one of tags are returned;
// relative order among matches is preserved.
func (n *Node) Children(tags ...string) []*Node {
	var out []*Node
	for _, child := range n.el.ChildElements() {
		if len(tags) > 0 && !tagMatches(child.Tag, tags) {
			continue
		}
		out = append(out, WrapElement(child))
	}
	return out
}

func tagMatches(tag string, tags []string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CreateChild appends a new synthesized child element with the given tag,
// returning a Node over it so attributes/text can be added.
func (n *Node) CreateChild(tag string) *Node {
	return WrapElement(n.el.CreateElement(tag))
}

// SetAttr sets (or overwrites) an attribute on a node being synthesized.
func (n *Node) SetAttr(name, value string) {
	n.el.CreateAttr(name, value)
}

// SetText sets the node's direct text content.
func (n *Node) SetText(text string) {
	n.el.SetText(text)
}

// Document is a parsed schema XML document.
type Document struct {
	doc *etree.Document
}

// Parse reads an entire SBE schema document from r.
func Parse(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("invalid schema xml: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Root returns the document's root element, or an error if the document has
// no root or its tag does not end in "messageSchema" per §6.
func (d *Document) Root() (*Node, error) {
	root := d.doc.Root()
	if root == nil {
		return nil, fmt.Errorf("invalid schema xml: missing root element")
	}
	if !hasMessageSchemaSuffix(root.Tag) {
		return nil, fmt.Errorf("invalid schema xml: root element %q does not end in messageSchema", root.Tag)
	}
	return WrapElement(root), nil
}

func hasMessageSchemaSuffix(tag string) bool {
	const suffix = "messageSchema"
	if len(tag) < len(suffix) {
		return false
	}
	return tag[len(tag)-len(suffix):] == suffix
}

// NewSyntheticRoot creates a detached document for building synthesized
// subtrees (padding members, the msgId enum); callers parse the detached
// node directly, without attaching it to the source document.
func NewSyntheticRoot(tag string) *Node {
	doc := etree.NewDocument()
	return WrapElement(doc.CreateElement(tag))
}

// SynthesizePadding builds the XML node for an implicitly inserted padding
// member: name="pad<idx>_", primitiveType="uint8", length=<gap>, matching
// the attribute set a human-authored padding type would carry (§4.1).
func SynthesizePadding(idx int, gapBytes int) *Node {
	n := NewSyntheticRoot("type")
	n.SetAttr("name", fmt.Sprintf("pad%d_", idx))
	n.SetAttr("primitiveType", "uint8")
	n.SetAttr("length", fmt.Sprintf("%d", gapBytes))
	return n
}

// SynthesizeBuiltin builds the XML node for a lazily-instantiated builtin
// primitive type, e.g. name="uint8", primitiveType="uint8".
func SynthesizeBuiltin(primitive string) *Node {
	n := NewSyntheticRoot("type")
	n.SetAttr("name", primitive)
	n.SetAttr("primitiveType", primitive)
	return n
}

// MsgIDValue is one (name, numeric-string) pair used to synthesize the
// message-id enum's validValue children.
type MsgIDValue struct {
	Name  string
	Value string
}

// SynthesizeMsgIDEnum builds the XML node for the MsgId enum transmuted
// from the message-header composite's templateId member (§4.2 Composite
// Type, message-header shape). encodingType is the underlying primitive
// inherited from the replaced templateId member.
func SynthesizeMsgIDEnum(name, encodingType string, values []MsgIDValue) *Node {
	n := NewSyntheticRoot("enum")
	n.SetAttr("name", name)
	n.SetAttr("encodingType", encodingType)
	for _, v := range values {
		vv := n.CreateChild("validValue")
		vv.SetAttr("name", v.Name)
		vv.SetText(v.Value)
	}
	return n
}
