package nbt

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// ErrPathMissing is returned by Compound.GetPath when an intermediate
// segment of the path does not exist or is not a compound. A missing leaf is
// reported as an absent value instead, never through this error.
var ErrPathMissing = errors.New("nbt: intermediate path segment missing")

// Compound is a live view over a compound tag node: a key-unique mapping
// from string name to tag value. Mutation through a Compound mutates the
// underlying node in place; the view buffers nothing.
//
// Values read from a Compound are either Go primitives (int8, int16, int32,
// int64, float32, float64, string, []byte, []int32) or nested *Compound and
// *List views. Values written must be one of the same set; bare Go maps and
// slices of any are rejected.
//
// Concurrency:
// A Compound is not safe for concurrent use. Access from multiple goroutines
// must be serialized by the caller. The typical host convention is a single
// main simulation thread for item mutation.
type Compound struct {
	h     *node
	cache wrapperCache
}

// NewCompound constructs a new, empty compound.
func NewCompound() *Compound {
	return &Compound{h: newCompoundNode()}
}

// NewRootCompound constructs a new, empty compound carrying a root name.
// The name is written as the name of the top-level tag when the compound is
// serialized; it has no other effect.
func NewRootCompound(name string) *Compound {
	c := NewCompound()
	c.h.name = name
	return c
}

// RootName returns the name the compound will be serialized under.
func (c *Compound) RootName() string {
	return c.h.name
}

func (c *Compound) handle() *node { return c.h }

// Len returns the number of entries in the compound.
func (c *Compound) Len() int {
	return len(c.h.children)
}

// Contains reports whether the compound holds an entry for key.
func (c *Compound) Contains(key string) bool {
	_, ok := c.h.children[key]
	return ok
}

// Get returns the value stored under key. The second return value reports
// whether the key was present; absence is an expected case and never an
// error.
func (c *Compound) Get(key string) (any, bool) {
	child, ok := c.h.children[key]
	if !ok {
		return nil, false
	}
	return c.cache.wrap(child), true
}

// Set stores a value under key, replacing any previous entry. Inserting a
// *Compound or *List stores the node it views; the same wrapper instance is
// returned by later reads of the key.
//
// Set panics if the value is not a wrapper or a supported primitive type.
func (c *Compound) Set(key string, value any) {
	n := unwrap(value)
	if old, ok := c.h.children[key]; ok && old != n {
		c.cache.evict(old)
	}
	c.h.children[key] = n
	if w, ok := value.(wrapper); ok {
		c.cache.seed(n, w)
	}
}

// Delete removes the entry stored under key, reporting whether an entry was
// removed.
func (c *Compound) Delete(key string) bool {
	child, ok := c.h.children[key]
	if !ok {
		return false
	}
	c.cache.evict(child)
	delete(c.h.children, key)
	return true
}

// Keys returns the keys of the compound in sorted order.
func (c *Compound) Keys() []string {
	return slices.Sorted(maps.Keys(c.h.children))
}

// All returns an iterator over the live entries of the compound, in
// unspecified order. Entries may be deleted through Delete while iterating.
// Each call to All reflects the current state of the compound.
func (c *Compound) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for k, child := range c.h.children {
			if !yield(k, c.cache.wrap(child)) {
				return
			}
		}
	}
}

// typedGet returns the payload stored under key if present, panicking when
// the stored tag is not of the wanted type. Typed access never coerces.
func (c *Compound) typedGet(key string, want TagType) (any, bool) {
	child, ok := c.h.children[key]
	if !ok {
		return nil, false
	}
	if child.typ != want {
		panic(fmt.Sprintf("nbt: key %q holds %v, not %v", key, child.typ, want))
	}
	return child.data, true
}

// GetByte returns the byte stored under key, or def if the key is absent.
func (c *Compound) GetByte(key string, def int8) int8 {
	if v, ok := c.typedGet(key, TagByte); ok {
		return v.(int8)
	}
	return def
}

// GetShort returns the short stored under key, or def if the key is absent.
func (c *Compound) GetShort(key string, def int16) int16 {
	if v, ok := c.typedGet(key, TagShort); ok {
		return v.(int16)
	}
	return def
}

// GetInt returns the int stored under key, or def if the key is absent.
func (c *Compound) GetInt(key string, def int32) int32 {
	if v, ok := c.typedGet(key, TagInt); ok {
		return v.(int32)
	}
	return def
}

// GetLong returns the long stored under key, or def if the key is absent.
func (c *Compound) GetLong(key string, def int64) int64 {
	if v, ok := c.typedGet(key, TagLong); ok {
		return v.(int64)
	}
	return def
}

// GetFloat32 returns the float stored under key, or def if the key is absent.
func (c *Compound) GetFloat32(key string, def float32) float32 {
	if v, ok := c.typedGet(key, TagFloat); ok {
		return v.(float32)
	}
	return def
}

// GetFloat64 returns the double stored under key, or def if the key is absent.
func (c *Compound) GetFloat64(key string, def float64) float64 {
	if v, ok := c.typedGet(key, TagDouble); ok {
		return v.(float64)
	}
	return def
}

// GetString returns the string stored under key, or def if the key is absent.
func (c *Compound) GetString(key string, def string) string {
	if v, ok := c.typedGet(key, TagString); ok {
		return v.(string)
	}
	return def
}

// GetByteArray returns the byte array stored under key, or def if the key is
// absent. The returned slice aliases the stored payload.
func (c *Compound) GetByteArray(key string, def []byte) []byte {
	if v, ok := c.typedGet(key, TagByteArray); ok {
		return v.([]byte)
	}
	return def
}

// GetInt32Array returns the int array stored under key, or def if the key is
// absent. The returned slice aliases the stored payload.
func (c *Compound) GetInt32Array(key string, def []int32) []int32 {
	if v, ok := c.typedGet(key, TagIntArray); ok {
		return v.([]int32)
	}
	return def
}

// GetList returns the list stored under key. If the key is absent and create
// is true, an empty list is stored and returned; otherwise absence yields
// nil. A non-list entry under the key is a casting fault.
func (c *Compound) GetList(key string, create bool) *List {
	v, ok := c.Get(key)
	if !ok {
		if !create {
			return nil
		}
		l := NewList()
		c.Set(key, l)
		return l
	}
	l, ok := v.(*List)
	if !ok {
		panic(fmt.Sprintf("nbt: key %q holds %v, not %v", key, c.h.children[key].typ, TagList))
	}
	return l
}

// GetCompound returns the compound stored under key. If the key is absent
// and create is true, an empty compound is stored and returned; otherwise
// absence yields nil. A non-compound entry under the key is a casting fault.
func (c *Compound) GetCompound(key string, create bool) *Compound {
	v, ok := c.Get(key)
	if !ok {
		if !create {
			return nil
		}
		m := NewCompound()
		c.Set(key, m)
		return m
	}
	m, ok := v.(*Compound)
	if !ok {
		panic(fmt.Sprintf("nbt: key %q holds %v, not %v", key, c.h.children[key].typ, TagCompound))
	}
	return m
}

// SetPath stores a value at a dotted path such as "display.Name", creating
// intermediate compounds as needed. The final segment names the leaf entry.
func (c *Compound) SetPath(path string, value any) {
	segments := splitPath(path)
	if len(segments) == 0 {
		panic("nbt: empty path")
	}
	current := c
	for _, segment := range segments[:len(segments)-1] {
		current = current.GetCompound(segment, true)
	}
	current.Set(segments[len(segments)-1], value)
}

// GetPath returns the value at a dotted path such as "display.Name".
//
// Every segment except the last must name an existing compound; a missing or
// non-compound intermediate returns an error wrapping ErrPathMissing. An
// absent leaf is the expected not-found case and returns (nil, nil).
//
// The asymmetry between the intermediate and leaf policies is deliberate:
// callers probing for an optional leaf under a structure they control get an
// absent value, while a vanished intermediate signals that the structure
// itself is not what the caller assumed.
func (c *Compound) GetPath(path string) (any, error) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: empty path %q", ErrPathMissing, path)
	}
	current := c
	for _, segment := range segments[:len(segments)-1] {
		child, ok := current.Get(segment)
		if !ok {
			return nil, fmt.Errorf("%w: %q in path %q", ErrPathMissing, segment, path)
		}
		next, ok := child.(*Compound)
		if !ok {
			return nil, fmt.Errorf("%w: %q in path %q is not a compound", ErrPathMissing, segment, path)
		}
		current = next
	}
	v, _ := current.Get(segments[len(segments)-1])
	return v, nil
}

// Copy returns a deep copy of the compound sharing no state with the
// original.
func (c *Compound) Copy() *Compound {
	return &Compound{h: c.h.copy()}
}

// Equal reports whether two compounds hold element-wise equal trees. Root
// names do not participate in equality.
func (c *Compound) Equal(other *Compound) bool {
	if other == nil {
		return false
	}
	return c.h.equal(other.h)
}

// splitPath splits a dotted path into segments, dropping empty ones.
func splitPath(path string) []string {
	var segments []string
	for segment := range strings.SplitSeq(path, ".") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
