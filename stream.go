package nbt

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// Compression selects the envelope around the raw tag bytes of a serialized
// compound.
type Compression uint8

const (
	// NoCompression reads and writes the raw tag bytes.
	NoCompression Compression = iota
	// GZipCompression wraps the tag bytes in a gzip envelope, the format
	// the native runtime uses for tag data at rest.
	GZipCompression
)

// ReadCompound decodes a root compound from r, decompressing when the gzip
// envelope is selected. The reader is drained only as far as the root
// compound extends; closing r remains the caller's responsibility.
//
// Malformed input is reported as an error wrapping ErrCorruptData.
func ReadCompound(r io.Reader, compression Compression) (*Compound, error) {
	if compression == GZipCompression {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip envelope: %v", ErrCorruptData, err)
		}
		defer zr.Close()
		r = zr
	}
	root, err := readRoot(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	return &Compound{h: root}, nil
}

// WriteCompound encodes src to w, compressing when the gzip envelope is
// selected. All buffered and compressed bytes are flushed before returning,
// on the success path and on the failure path alike; closing w remains the
// caller's responsibility.
func WriteCompound(w io.Writer, src *Compound, compression Compression) error {
	var zw *gzip.Writer
	if compression == GZipCompression {
		zw = gzip.NewWriter(w)
		w = zw
	}
	bw := bufio.NewWriter(w)

	err := writeRoot(bw, src.h)
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	if zw != nil {
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// ReadFile decodes a root compound from a file, detecting a gzip envelope
// from the file's magic bytes.
func ReadFile(path string) (*Compound, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	compression := NoCompression
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		compression = GZipCompression
	}
	return ReadCompound(br, compression)
}

// WriteFile encodes src to a file, truncating any previous content.
func WriteFile(path string, src *Compound, compression Compression) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := WriteCompound(f, src, compression); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Save encodes the compound to w. It is shorthand for WriteCompound.
func (c *Compound) Save(w io.Writer, compression Compression) error {
	return WriteCompound(w, c, compression)
}
