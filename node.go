package nbt

import (
	"bytes"
	"slices"
)

// node is a single tag in the library-owned tree. Nodes own their payload
// data; view wrappers hold a non-owning handle to a node and never copy it.
//
// Exactly one payload field is populated, selected by typ:
//   - data holds primitive, string and array payloads
//   - children holds the compound payload
//   - list and elem hold the list payload
type node struct {
	typ TagType

	// name is only meaningful for the root of a serialized tree. Child
	// compound entries are named by their map key and list entries are
	// unnamed.
	name string

	data     any
	children map[string]*node
	list     []*node

	// elem is the element type shared by every entry of a list node. It is
	// locked by the first insertion and stays TagEnd while the list is empty.
	elem TagType
}

// newPrimitiveNode constructs a node carrying a primitive, string or array
// payload. The value must already match the payload type of tag.
func newPrimitiveNode(tag TagType, value any) *node {
	return &node{typ: tag, data: value}
}

// newCompoundNode constructs an empty compound node.
func newCompoundNode() *node {
	return &node{typ: TagCompound, children: make(map[string]*node)}
}

// newListNode constructs an empty list node with no locked element type.
func newListNode() *node {
	return &node{typ: TagList, elem: TagEnd}
}

// copy returns a deep copy of the node and all of its descendants. Array
// payloads are cloned so the copy shares no mutable state with the original.
func (n *node) copy() *node {
	c := &node{typ: n.typ, name: n.name, elem: n.elem}
	switch n.typ {
	case TagCompound:
		c.children = make(map[string]*node, len(n.children))
		for k, child := range n.children {
			c.children[k] = child.copy()
		}
	case TagList:
		c.list = make([]*node, len(n.list))
		for i, child := range n.list {
			c.list[i] = child.copy()
		}
	case TagByteArray:
		c.data = bytes.Clone(n.data.([]byte))
	case TagIntArray:
		c.data = slices.Clone(n.data.([]int32))
	default:
		c.data = n.data
	}
	return c
}

// equal reports whether two nodes hold element-wise equal trees. The root
// name does not participate in equality; list element types are compared
// only indirectly through the entries themselves, so an emptied list equals
// a never-filled one.
func (n *node) equal(o *node) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil || n.typ != o.typ {
		return false
	}
	switch n.typ {
	case TagCompound:
		if len(n.children) != len(o.children) {
			return false
		}
		for k, child := range n.children {
			other, ok := o.children[k]
			if !ok || !child.equal(other) {
				return false
			}
		}
		return true
	case TagList:
		return slices.EqualFunc(n.list, o.list, (*node).equal)
	case TagByteArray:
		return bytes.Equal(n.data.([]byte), o.data.([]byte))
	case TagIntArray:
		return slices.Equal(n.data.([]int32), o.data.([]int32))
	default:
		return n.data == o.data
	}
}
