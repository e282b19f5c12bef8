package nbt

import (
	"errors"
	"fmt"
	"iter"

	"github.com/df-mc/dragonfly/server/item"
	"github.com/google/uuid"
)

// ErrEmptyStack is returned when an empty item stack is asked to carry tag
// data. An empty stack is the host's sentinel for "no item" and has nowhere
// to keep a tag.
var ErrEmptyStack = errors.New("nbt: empty item stacks cannot carry tag data")

// tagValueKey is the key the root tag compound is attached under in a
// stack's value store.
const tagValueKey = "nbt:tag"

// attributesKey names the attribute modifier list nested under an item's
// root tag compound.
const attributesKey = "AttributeModifiers"

// ItemTag returns the root tag compound attached to the stack, creating and
// attaching an empty one if the stack does not carry one yet.
//
// Dragonfly stacks are value types, so attaching a fresh compound produces a
// new stack; the returned stack is the one carrying the compound and must be
// used in place of the argument. The compound itself is shared by pointer:
// mutating it mutates the tag of every copy of the returned stack.
func ItemTag(s item.Stack) (item.Stack, *Compound, error) {
	if s.Empty() {
		return s, nil, ErrEmptyStack
	}
	if v, ok := s.Value(tagValueKey); ok {
		c, ok := v.(*Compound)
		if !ok {
			return s, nil, fmt.Errorf("nbt: stack carries a foreign %T under %q", v, tagValueKey)
		}
		return s, c, nil
	}
	c := NewRootCompound("tag")
	return s.WithValue(tagValueKey, c), c, nil
}

// SetItemTag attaches a root tag compound to the stack, replacing any
// previous one, and returns the carrying stack.
func SetItemTag(s item.Stack, c *Compound) (item.Stack, error) {
	if s.Empty() {
		return s, ErrEmptyStack
	}
	return s.WithValue(tagValueKey, c), nil
}

// ItemAttributes exposes the attribute modifier list of an item stack. The
// list is the "AttributeModifiers" list nested under the stack's root tag
// compound, created empty on first access.
//
// Concurrency:
// ItemAttributes is not safe for concurrent use. The host's convention is a
// single main simulation thread for item mutation.
type ItemAttributes struct {
	stack      item.Stack
	attributes *List
}

// NewItemAttributes wraps the attribute modifier list of the given stack.
// Empty stacks are rejected with ErrEmptyStack.
func NewItemAttributes(s item.Stack) (*ItemAttributes, error) {
	carrying, root, err := ItemTag(s)
	if err != nil {
		return nil, err
	}
	return &ItemAttributes{
		stack:      carrying,
		attributes: root.GetList(attributesKey, true),
	}, nil
}

// Stack returns the stack carrying the attribute list. Callers that started
// from a stack without a tag must use this stack in place of the original.
func (i *ItemAttributes) Stack() item.Stack {
	return i.stack
}

// Len returns the number of attribute modifiers on the item.
func (i *ItemAttributes) Len() int {
	return i.attributes.Len()
}

// At returns the attribute modifier at the given index.
func (i *ItemAttributes) At(index int) Attribute {
	return AttributeFromCompound(i.attributes.At(index).(*Compound))
}

// Add appends an attribute modifier to the item. The attribute must carry a
// display name.
func (i *ItemAttributes) Add(a Attribute) {
	if a.Name() == "" {
		panic("nbt: attribute must have a name")
	}
	i.attributes.Add(a.data)
}

// Remove removes the first attribute modifier carrying the same unique id as
// the given attribute, reporting whether a modifier was removed.
func (i *ItemAttributes) Remove(a Attribute) bool {
	return i.RemoveUUID(a.UUID())
}

// RemoveUUID removes the first attribute modifier carrying the given unique
// id, reporting whether a modifier was removed.
func (i *ItemAttributes) RemoveUUID(id uuid.UUID) bool {
	for index := range i.attributes.Len() {
		if i.At(index).UUID() == id {
			i.attributes.RemoveAt(index)
			return true
		}
	}
	return false
}

// Clear removes every attribute modifier from the item.
func (i *ItemAttributes) Clear() {
	i.attributes.Clear()
}

// All returns an iterator over the attribute modifiers of the item. Each
// call to All reflects the live state of the backing list, not a snapshot.
func (i *ItemAttributes) All() iter.Seq[Attribute] {
	return func(yield func(Attribute) bool) {
		for index := 0; index < i.attributes.Len(); index++ {
			if !yield(i.At(index)) {
				return
			}
		}
	}
}
