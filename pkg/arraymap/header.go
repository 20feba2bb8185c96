package arraymap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Every header field is one fixed-width little-endian 64-bit word, and type
// tags are padded to the same width. This keeps decoding trivial and offsets
// computable without touching the data regions.
const headerWord = 8

// HeaderSize returns the encoded byte length of the header for the given
// shapes: one word for the count, then per array one word for the tag, one
// for the dimension count and one per dimension.
func HeaderSize(shapes [][]int) int {
	size := headerWord
	for _, shape := range shapes {
		size += 2*headerWord + headerWord*len(shape)
	}
	return size
}

// EncodeHeader encodes the descriptor list into the fixed-field binary header.
// It returns ErrCountMismatch when dtypes and shapes differ in length, and
// produces no output for invalid input.
func EncodeHeader(dtypes []DType, shapes [][]int) ([]byte, error) {
	if len(dtypes) != len(shapes) {
		return nil, fmt.Errorf("%w: %d dtypes, %d shapes", ErrCountMismatch, len(dtypes), len(shapes))
	}
	for i, d := range dtypes {
		if !d.valid() {
			return nil, fmt.Errorf("arraymap: array %d: unsupported dtype %v", i, d)
		}
		if len(d.String()) > headerWord {
			return nil, fmt.Errorf("arraymap: array %d: type tag %q longer than %d bytes", i, d.String(), headerWord)
		}
		for _, dim := range shapes[i] {
			if dim < 0 {
				return nil, fmt.Errorf("arraymap: array %d: negative dimension %d", i, dim)
			}
		}
	}

	buf := make([]byte, 0, HeaderSize(shapes))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(dtypes)))
	for i, d := range dtypes {
		var tag [headerWord]byte
		copy(tag[:], d.String())
		for j := len(d.String()); j < headerWord; j++ {
			tag[j] = ' '
		}
		buf = append(buf, tag[:]...)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(shapes[i])))
		for _, dim := range shapes[i] {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(dim))
		}
	}
	return buf, nil
}

// DecodeHeader is the inverse of EncodeHeader. It reads the count first, then
// the fixed-width fields for each array sequentially. Bytes past the end of
// the header are ignored (in a container file the data regions follow).
// A byte stream that ends before a required field is fully read yields
// ErrCorruptHeader.
func DecodeHeader(data []byte) ([]DType, [][]int, error) {
	dtypes, shapes, _, err := readHeader(bytes.NewReader(data))
	return dtypes, shapes, err
}

// readHeader decodes a header from r, consuming exactly the header bytes.
// It also returns the decoded header length.
func readHeader(r io.Reader) ([]DType, [][]int, int, error) {
	word := func() (uint64, error) {
		var b [headerWord]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(b[:]), nil
	}
	truncated := func(err error) error {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: truncated", ErrCorruptHeader)
		}
		return err
	}

	count, err := word()
	if err != nil {
		return nil, nil, 0, truncated(err)
	}
	read := headerWord

	dtypes := make([]DType, 0, min(count, 1024))
	shapes := make([][]int, 0, min(count, 1024))
	for i := uint64(0); i < count; i++ {
		var tag [headerWord]byte
		if _, err := io.ReadFull(r, tag[:]); err != nil {
			return nil, nil, 0, truncated(err)
		}
		d, err := ParseDType(string(tag[:]))
		if err != nil {
			return nil, nil, 0, fmt.Errorf("%w: array %d: %v", ErrCorruptHeader, i, err)
		}

		ndim, err := word()
		if err != nil {
			return nil, nil, 0, truncated(err)
		}
		shape := make([]int, 0, min(ndim, 64))
		for j := uint64(0); j < ndim; j++ {
			dim, err := word()
			if err != nil {
				return nil, nil, 0, truncated(err)
			}
			if dim > uint64(int(^uint(0)>>1)) {
				return nil, nil, 0, fmt.Errorf("%w: array %d: dimension out of range", ErrCorruptHeader, i)
			}
			shape = append(shape, int(dim))
		}

		dtypes = append(dtypes, d)
		shapes = append(shapes, shape)
		read += headerWord * (2 + len(shape))
	}
	return dtypes, shapes, read, nil
}

// Offsets derives the byte offset at which each array's raw data begins.
// It returns len(dtypes)+1 values: offsets[i] is the start of array i's data
// region and the final value is the total file size.
//
// A region's size is ItemSize * product(shape). The empty shape (a scalar)
// contributes a zero-byte region: the empty product is deliberately defined
// as 0 here, not 1, so consecutive offsets around a scalar coincide. An array
// with a zero-length dimension likewise occupies no bytes.
func Offsets(dtypes []DType, shapes [][]int) ([]uint64, error) {
	if len(dtypes) != len(shapes) {
		return nil, fmt.Errorf("%w: %d dtypes, %d shapes", ErrCountMismatch, len(dtypes), len(shapes))
	}
	offsets := make([]uint64, len(dtypes)+1)
	offsets[0] = uint64(HeaderSize(shapes))
	for i := range dtypes {
		size, err := regionSize(dtypes[i], shapes[i])
		if err != nil {
			return nil, fmt.Errorf("array %d: %w", i, err)
		}
		next := offsets[i] + size
		if next < offsets[i] {
			return nil, fmt.Errorf("arraymap: array %d: offset overflow", i)
		}
		offsets[i+1] = next
	}
	return offsets, nil
}

func regionSize(d DType, shape []int) (uint64, error) {
	if len(shape) == 0 {
		return 0, nil
	}
	n := uint64(1)
	for _, dim := range shape {
		if dim < 0 {
			return 0, fmt.Errorf("arraymap: negative dimension %d", dim)
		}
		if dim != 0 && n > ^uint64(0)/uint64(dim) {
			return 0, errors.New("arraymap: region size overflow")
		}
		n *= uint64(dim)
	}
	size := uint64(d.ItemSize())
	if n != 0 && size > ^uint64(0)/n {
		return 0, errors.New("arraymap: region size overflow")
	}
	return n * size, nil
}
