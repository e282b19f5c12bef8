// Package nbt provides a typed tag-tree (NBT) codec with live mutable views
// and an item attribute layer for Dragonfly servers.
//
// The package owns a tree of tagged nodes matching the Java-edition NBT data
// model and exposes it through three layers:
//   - Binary codec for the named-root wire format, with an optional gzip
//     envelope
//   - Compound and List views that read and write the tree in place, with
//     identity-stable wrappers for nested containers
//   - An attribute modifier layer that attaches typed stat modifiers to
//     Dragonfly item stacks
//
// # Quick Start
//
// Build a compound and persist it:
//
//	c := nbt.NewRootCompound("tag")
//	c.Set("Damage", int16(3))
//	c.SetPath("display.Name", "Excalibur")
//
//	var buf bytes.Buffer
//	if err := c.Save(&buf, nbt.GZipCompression); err != nil {
//	    ...
//	}
//	decoded, err := nbt.ReadCompound(&buf, nbt.GZipCompression)
//
// # Attributes
//
// Attach a stat modifier to an item stack:
//
//	attrs, err := nbt.NewItemAttributes(stack)
//	if err != nil {
//	    ...
//	}
//	attrs.Add(nbt.AttributeConfig{
//	    Name:   "Sharpness",
//	    Amount: 4,
//	    Type:   nbt.AttributeAttackDamage,
//	}.New())
//	stack = attrs.Stack()
//
// # Values
//
// Compounds and lists store sized primitives (int8 through int64, float32,
// float64), strings, []byte, []int32 and nested *Compound and *List views.
// Bare Go maps and slices are rejected: only view wrappers preserve the
// live, copy-free semantics of the tree.
//
// # Concurrency
//
// The attribute type registry is safe for concurrent use. Views over a tree
// are not: access to a compound, list or item attribute set must be
// serialized by the caller, which on a Dragonfly server is normally the
// world transaction the item lives in.
package nbt

// Version is the nbt library version.
const Version = "1.0.0"
