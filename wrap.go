package nbt

// wrapper is implemented by the view types that expose a live window over a
// native tag node.
type wrapper interface {
	handle() *node
}

// wrapperCache keeps one wrapper per underlying composite node, keyed by
// node identity. It guarantees that two reads returning the same composite
// child yield the same wrapper instance, so callers may compare views by
// pointer. Primitive payloads carry no identity worth preserving and are
// re-fetched on every access instead.
//
// Entries are evicted explicitly when the child leaves the tree (overwritten
// or removed through the owning view), so the cache never holds wrappers for
// nodes that are no longer reachable from its parent.
//
// Each cache belongs to a single parent view and inherits that view's
// single-threaded contract.
type wrapperCache struct {
	entries map[*node]wrapper
}

// wrap converts a native node into its caller-facing value: the payload
// itself for primitives, strings and arrays, or a cached view wrapper for
// compounds and lists.
func (c *wrapperCache) wrap(n *node) any {
	if n == nil {
		return nil
	}
	if !n.typ.composite() {
		return n.data
	}
	if w, ok := c.entries[n]; ok {
		return w
	}
	var w wrapper
	switch n.typ {
	case TagCompound:
		w = &Compound{h: n}
	default:
		w = &List{h: n}
	}
	c.seed(n, w)
	return w
}

// seed records a wrapper for a node, so a later read returns the instance
// that was inserted rather than a fresh view.
func (c *wrapperCache) seed(n *node, w wrapper) {
	if c.entries == nil {
		c.entries = make(map[*node]wrapper)
	}
	c.entries[n] = w
}

// evict drops the cache entry for a node that left the tree.
func (c *wrapperCache) evict(n *node) {
	if n != nil && n.typ.composite() {
		delete(c.entries, n)
	}
}

// unwrap converts a caller-supplied value into a native node. Wrappers yield
// the node they view; supported primitives are boxed into a fresh node.
//
// Bare Go containers are a contract violation: a plain map or slice cannot
// provide the live view semantics of the tag tree, so only *Compound and
// *List may be inserted for composite values. Contract violations and
// unsupported primitive types panic, consistent with the rest of the
// mutation API.
func unwrap(value any) *node {
	switch v := value.(type) {
	case nil:
		panic("nbt: cannot insert a nil value")
	case wrapper:
		return v.handle()
	case []any:
		panic("nbt: can only insert a *List, not a bare []any")
	case map[string]any:
		panic("nbt: can only insert a *Compound, not a bare map[string]any")
	}
	tag, err := tagOf(value)
	if err != nil {
		panic(err.Error())
	}
	return newPrimitiveNode(tag, value)
}
