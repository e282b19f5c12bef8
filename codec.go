package nbt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
)

// ErrCorruptData is wrapped by every error reported for malformed persisted
// tag data: unknown tag ids, negative lengths, truncated payloads and
// over-deep trees. It is distinct from absence, which is never an error.
var ErrCorruptData = errors.New("nbt: corrupt tag data")

// maxDepth bounds the nesting of compounds and lists on both encode and
// decode. Decoding guards against crafted depth bombs; encoding guards
// against cyclic trees built through wrappers.
const maxDepth = 512

// The wire format is the Java-edition NBT layout: a named root compound,
// big-endian multi-byte values, uint16-length-prefixed strings and
// int32-length-prefixed arrays. List payloads carry one element tag byte
// followed by an int32 count.

func writeRoot(w io.Writer, root *node) error {
	if root.typ != TagCompound {
		return fmt.Errorf("nbt: root tag must be %v, not %v", TagCompound, root.typ)
	}
	if err := writeByte(w, byte(TagCompound)); err != nil {
		return err
	}
	if err := writeString(w, root.name); err != nil {
		return err
	}
	return writePayload(w, root, 0)
}

func writePayload(w io.Writer, n *node, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("nbt: tag tree exceeds maximum depth %d", maxDepth)
	}
	switch n.typ {
	case TagByte:
		return writeByte(w, byte(n.data.(int8)))
	case TagShort:
		return writeBE(w, uint16(n.data.(int16)))
	case TagInt:
		return writeBE(w, uint32(n.data.(int32)))
	case TagLong:
		return writeBE(w, uint64(n.data.(int64)))
	case TagFloat:
		return writeBE(w, math.Float32bits(n.data.(float32)))
	case TagDouble:
		return writeBE(w, math.Float64bits(n.data.(float64)))
	case TagByteArray:
		b := n.data.([]byte)
		if err := writeLen(w, len(b)); err != nil {
			return err
		}
		_, err := w.Write(b)
		return err
	case TagIntArray:
		ints := n.data.([]int32)
		if err := writeLen(w, len(ints)); err != nil {
			return err
		}
		for _, v := range ints {
			if err := writeBE(w, uint32(v)); err != nil {
				return err
			}
		}
		return nil
	case TagString:
		return writeString(w, n.data.(string))
	case TagList:
		if err := writeByte(w, byte(n.elem)); err != nil {
			return err
		}
		if err := writeLen(w, len(n.list)); err != nil {
			return err
		}
		for _, child := range n.list {
			if err := writePayload(w, child, depth+1); err != nil {
				return err
			}
		}
		return nil
	case TagCompound:
		for _, key := range sortedKeys(n.children) {
			child := n.children[key]
			if err := writeByte(w, byte(child.typ)); err != nil {
				return err
			}
			if err := writeString(w, key); err != nil {
				return err
			}
			if err := writePayload(w, child, depth+1); err != nil {
				return err
			}
		}
		return writeByte(w, byte(TagEnd))
	default:
		return fmt.Errorf("nbt: cannot encode %v", n.typ)
	}
}

func readRoot(r io.Reader) (*node, error) {
	tag, err := readByte(r)
	if err != nil {
		return nil, fmt.Errorf("%w: missing root tag: %v", ErrCorruptData, err)
	}
	if TagType(tag) != TagCompound {
		return nil, fmt.Errorf("%w: root tag is %v, not %v", ErrCorruptData, TagType(tag), TagCompound)
	}
	name, err := readString(r)
	if err != nil {
		return nil, err
	}
	root, err := readPayload(r, TagCompound, 0)
	if err != nil {
		return nil, err
	}
	root.name = name
	return root, nil
}

func readPayload(r io.Reader, tag TagType, depth int) (*node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: tag tree exceeds maximum depth %d", ErrCorruptData, maxDepth)
	}
	switch tag {
	case TagByte:
		b, err := readByte(r)
		if err != nil {
			return nil, truncated(tag, err)
		}
		return newPrimitiveNode(tag, int8(b)), nil
	case TagShort:
		v, err := readBE[uint16](r)
		if err != nil {
			return nil, truncated(tag, err)
		}
		return newPrimitiveNode(tag, int16(v)), nil
	case TagInt:
		v, err := readBE[uint32](r)
		if err != nil {
			return nil, truncated(tag, err)
		}
		return newPrimitiveNode(tag, int32(v)), nil
	case TagLong:
		v, err := readBE[uint64](r)
		if err != nil {
			return nil, truncated(tag, err)
		}
		return newPrimitiveNode(tag, int64(v)), nil
	case TagFloat:
		v, err := readBE[uint32](r)
		if err != nil {
			return nil, truncated(tag, err)
		}
		return newPrimitiveNode(tag, math.Float32frombits(v)), nil
	case TagDouble:
		v, err := readBE[uint64](r)
		if err != nil {
			return nil, truncated(tag, err)
		}
		return newPrimitiveNode(tag, math.Float64frombits(v)), nil
	case TagByteArray:
		length, err := readLen(r, tag)
		if err != nil {
			return nil, err
		}
		b := make([]byte, length)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, truncated(tag, err)
		}
		return newPrimitiveNode(tag, b), nil
	case TagIntArray:
		length, err := readLen(r, tag)
		if err != nil {
			return nil, err
		}
		ints := make([]int32, length)
		for i := range ints {
			v, err := readBE[uint32](r)
			if err != nil {
				return nil, truncated(tag, err)
			}
			ints[i] = int32(v)
		}
		return newPrimitiveNode(tag, ints), nil
	case TagString:
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		return newPrimitiveNode(tag, s), nil
	case TagList:
		elem, err := readByte(r)
		if err != nil {
			return nil, truncated(tag, err)
		}
		length, err := readLen(r, tag)
		if err != nil {
			return nil, err
		}
		elemType := TagType(elem)
		if length > 0 && (!elemType.valid() || elemType == TagEnd) {
			return nil, fmt.Errorf("%w: list element tag id %d", ErrCorruptData, elem)
		}
		n := newListNode()
		if length > 0 {
			n.elem = elemType
			n.list = make([]*node, 0, min(length, 4096))
			for range length {
				child, err := readPayload(r, elemType, depth+1)
				if err != nil {
					return nil, err
				}
				n.list = append(n.list, child)
			}
		}
		return n, nil
	case TagCompound:
		n := newCompoundNode()
		for {
			childTag, err := readByte(r)
			if err != nil {
				return nil, truncated(tag, err)
			}
			if TagType(childTag) == TagEnd {
				return n, nil
			}
			if !TagType(childTag).valid() {
				return nil, fmt.Errorf("%w: unknown tag id %d", ErrCorruptData, childTag)
			}
			key, err := readString(r)
			if err != nil {
				return nil, err
			}
			child, err := readPayload(r, TagType(childTag), depth+1)
			if err != nil {
				return nil, err
			}
			n.children[key] = child
		}
	default:
		return nil, fmt.Errorf("%w: unknown tag id %d", ErrCorruptData, uint8(tag))
	}
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func writeBE[T uint16 | uint32 | uint64](w io.Writer, v T) error {
	var buf [8]byte
	switch v := any(v).(type) {
	case uint16:
		binary.BigEndian.PutUint16(buf[:2], v)
		_, err := w.Write(buf[:2])
		return err
	case uint32:
		binary.BigEndian.PutUint32(buf[:4], v)
		_, err := w.Write(buf[:4])
		return err
	default:
		binary.BigEndian.PutUint64(buf[:8], v.(uint64))
		_, err := w.Write(buf[:8])
		return err
	}
}

func writeLen(w io.Writer, n int) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("nbt: payload length %d exceeds int32", n)
	}
	return writeBE(w, uint32(int32(n)))
}

func writeString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("nbt: string length %d exceeds uint16", len(s))
	}
	if err := writeBE(w, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readByte(r io.Reader) (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(r, buf[:])
	return buf[0], err
}

func readBE[T uint16 | uint32 | uint64](r io.Reader) (T, error) {
	var buf [8]byte
	var zero T
	switch any(zero).(type) {
	case uint16:
		if _, err := io.ReadFull(r, buf[:2]); err != nil {
			return zero, err
		}
		return T(binary.BigEndian.Uint16(buf[:2])), nil
	case uint32:
		if _, err := io.ReadFull(r, buf[:4]); err != nil {
			return zero, err
		}
		return T(binary.BigEndian.Uint32(buf[:4])), nil
	default:
		if _, err := io.ReadFull(r, buf[:8]); err != nil {
			return zero, err
		}
		return T(binary.BigEndian.Uint64(buf[:8])), nil
	}
}

func readLen(r io.Reader, tag TagType) (int, error) {
	v, err := readBE[uint32](r)
	if err != nil {
		return 0, truncated(tag, err)
	}
	length := int32(v)
	if length < 0 {
		return 0, fmt.Errorf("%w: negative %v length %d", ErrCorruptData, tag, length)
	}
	return int(length), nil
}

func readString(r io.Reader) (string, error) {
	length, err := readBE[uint16](r)
	if err != nil {
		return "", truncated(TagString, err)
	}
	b := make([]byte, length)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", truncated(TagString, err)
	}
	return string(b), nil
}

func truncated(tag TagType, err error) error {
	return fmt.Errorf("%w: truncated %v payload: %v", ErrCorruptData, tag, err)
}

// sortedKeys returns the compound keys in sorted order. Deterministic
// output keeps byte-level round trips stable.
func sortedKeys(m map[string]*node) []string {
	return slices.Sorted(maps.Keys(m))
}
