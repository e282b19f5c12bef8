package nbt

import "fmt"

// TagType identifies the payload kind of a tag node. The numeric values
// match the ids used by the Java-edition NBT wire format.
type TagType uint8

const (
	// TagEnd terminates a compound payload on the wire. It never appears
	// as a stored value.
	TagEnd TagType = iota
	// TagByte holds an int8.
	TagByte
	// TagShort holds an int16.
	TagShort
	// TagInt holds an int32.
	TagInt
	// TagLong holds an int64.
	TagLong
	// TagFloat holds a float32.
	TagFloat
	// TagDouble holds a float64.
	TagDouble
	// TagByteArray holds a []byte.
	TagByteArray
	// TagString holds a string.
	TagString
	// TagList holds an ordered sequence of unnamed child tags that all
	// share one element type.
	TagList
	// TagCompound holds a mapping from string name to child tag.
	TagCompound
	// TagIntArray holds a []int32.
	TagIntArray
)

// tagCount is the number of defined tag types.
const tagCount = int(TagIntArray) + 1

// String returns the string representation of TagType.
func (t TagType) String() string {
	switch t {
	case TagEnd:
		return "TagEnd"
	case TagByte:
		return "TagByte"
	case TagShort:
		return "TagShort"
	case TagInt:
		return "TagInt"
	case TagLong:
		return "TagLong"
	case TagFloat:
		return "TagFloat"
	case TagDouble:
		return "TagDouble"
	case TagByteArray:
		return "TagByteArray"
	case TagString:
		return "TagString"
	case TagList:
		return "TagList"
	case TagCompound:
		return "TagCompound"
	case TagIntArray:
		return "TagIntArray"
	default:
		return fmt.Sprintf("TagType(%d)", uint8(t))
	}
}

// valid reports whether t is one of the defined tag types.
func (t TagType) valid() bool {
	return int(t) < tagCount
}

// composite reports whether t is a container type whose values are exposed
// through view wrappers rather than returned directly.
func (t TagType) composite() bool {
	return t == TagList || t == TagCompound
}

// tagOf maps a Go value's dynamic type to the corresponding tag type.
//
// The mapping is a fixed table with no implicit coercion: only the sized
// integer and float types, string, []byte and []int32 are accepted. In
// particular the platform-sized int is rejected, since a tag written from it
// would silently change width between hosts. Unsupported types produce an
// error naming the offending runtime type.
func tagOf(value any) (TagType, error) {
	switch value.(type) {
	case int8:
		return TagByte, nil
	case int16:
		return TagShort, nil
	case int32:
		return TagInt, nil
	case int64:
		return TagLong, nil
	case float32:
		return TagFloat, nil
	case float64:
		return TagDouble, nil
	case []byte:
		return TagByteArray, nil
	case string:
		return TagString, nil
	case []int32:
		return TagIntArray, nil
	case int, uint, uint8, uint16, uint32, uint64:
		return TagEnd, fmt.Errorf("nbt: illegal type %T (%v): use a sized signed integer", value, value)
	default:
		return TagEnd, fmt.Errorf("nbt: illegal type %T (%v)", value, value)
	}
}
