package nbt

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

// buildSample fills a compound with every supported payload kind, including
// nested containers.
func buildSample() *Compound {
	c := NewRootCompound("tag")
	c.Set("byte", int8(-7))
	c.Set("short", int16(0x1234))
	c.Set("int", int32(-123456))
	c.Set("long", int64(1)<<40)
	c.Set("float", float32(1.5))
	c.Set("double", 2.25)
	c.Set("string", "héllo wörld")
	c.Set("bytes", []byte{0, 1, 2, 255})
	c.Set("ints", []int32{-1, 0, 1 << 30})

	display := NewCompound()
	display.Set("Name", "Excalibur")
	display.Set("Lore", NewList("forged", "long ago"))
	c.Set("display", display)

	c.Set("doubles", NewList(1.0, 2.0, 3.0))
	return c
}

// encodeDecode runs a compound through an uncompressed write/read cycle.
func encodeDecode(t *testing.T, src *Compound) *Compound {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteCompound(&buf, src, NoCompression); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadCompound(&buf, NoCompression)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return got
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name        string
		compression Compression
	}{
		{"raw", NoCompression},
		{"gzip", GZipCompression},
	} {
		t.Run(tc.name, func(t *testing.T) {
			src := buildSample()

			var buf bytes.Buffer
			if err := WriteCompound(&buf, src, tc.compression); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := ReadCompound(&buf, tc.compression)
			if err != nil {
				t.Fatalf("read: %v", err)
			}

			if !got.Equal(src) {
				t.Fatalf("round trip mismatch: got %v keys, want %v keys", got.Keys(), src.Keys())
			}
			if got.RootName() != "tag" {
				t.Fatalf("root name = %q, want %q", got.RootName(), "tag")
			}
			if got.GetShort("short", 0) != 0x1234 {
				t.Fatalf("short = %d", got.GetShort("short", 0))
			}
			if got.GetCompound("display", false).GetString("Name", "") != "Excalibur" {
				t.Fatalf("nested string lost")
			}
			lore := got.GetCompound("display", false).GetList("Lore", false)
			if lore.Len() != 2 || lore.At(1).(string) != "long ago" {
				t.Fatalf("nested list lost")
			}
		})
	}
}

func TestWriteDeterministic(t *testing.T) {
	src := buildSample()

	var a, b bytes.Buffer
	if err := WriteCompound(&a, src, NoCompression); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := WriteCompound(&b, src, NoCompression); err != nil {
		t.Fatalf("write b: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("two encodes of the same tree differ")
	}
}

func TestReadCorrupt(t *testing.T) {
	var valid bytes.Buffer
	if err := WriteCompound(&valid, buildSample(), NoCompression); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad root tag", []byte{0x01, 0x00, 0x00}},
		{"unknown tag id", []byte{
			0x0a, 0x00, 0x00, // root compound, empty name
			0x7f, // bogus child tag id
		}},
		{"truncated payload", valid.Bytes()[:valid.Len()-4]},
		{"negative array length", []byte{
			0x0a, 0x00, 0x00,
			0x07, 0x00, 0x01, 'b', // byte array named "b"
			0xff, 0xff, 0xff, 0xff, // length -1
			0x00,
		}},
		{"list of end tags", []byte{
			0x0a, 0x00, 0x00,
			0x09, 0x00, 0x01, 'l', // list named "l"
			0x00,                   // element type TagEnd
			0x00, 0x00, 0x00, 0x02, // but two entries
			0x00,
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadCompound(bytes.NewReader(tc.data), NoCompression)
			if !errors.Is(err, ErrCorruptData) {
				t.Fatalf("err = %v, want ErrCorruptData", err)
			}
		})
	}
}

func TestReadCorruptGZip(t *testing.T) {
	_, err := ReadCompound(bytes.NewReader([]byte("not gzip at all")), GZipCompression)
	if !errors.Is(err, ErrCorruptData) {
		t.Fatalf("err = %v, want ErrCorruptData", err)
	}
}

func TestFileRoundTripAutoDetect(t *testing.T) {
	dir := t.TempDir()
	src := buildSample()

	for _, tc := range []struct {
		name        string
		compression Compression
	}{
		{"raw.nbt", NoCompression},
		{"gzip.nbt", GZipCompression},
	} {
		path := filepath.Join(dir, tc.name)
		if err := WriteFile(path, src, tc.compression); err != nil {
			t.Fatalf("%s: write: %v", tc.name, err)
		}
		got, err := ReadFile(path)
		if err != nil {
			t.Fatalf("%s: read: %v", tc.name, err)
		}
		if !got.Equal(src) {
			t.Fatalf("%s: round trip mismatch", tc.name)
		}
	}
}

func TestWriteDepthBound(t *testing.T) {
	// Deep nesting beyond the depth bound must fail cleanly instead of
	// overflowing the stack on encode.
	root := NewCompound()
	current := root
	for range maxDepth + 2 {
		next := NewCompound()
		current.Set("n", next)
		current = next
	}
	if err := WriteCompound(&bytes.Buffer{}, root, NoCompression); err == nil {
		t.Fatalf("expected depth error")
	}
}
