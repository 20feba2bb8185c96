package arraymap

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the element category of a stored array.
// Keep these stable forever; add new values only.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindUint
	KindFloat
	KindBytes
)

// DType describes the element encoding of one stored array: its kind and the
// fixed number of bytes one element occupies. Multi-byte numeric elements are
// always little-endian on disk.
type DType struct {
	Kind Kind
	Size int
}

// Supported numeric element types.
var (
	Bool    = DType{KindBool, 1}
	Int8    = DType{KindInt, 1}
	Int16   = DType{KindInt, 2}
	Int32   = DType{KindInt, 4}
	Int64   = DType{KindInt, 8}
	Uint8   = DType{KindUint, 1}
	Uint16  = DType{KindUint, 2}
	Uint32  = DType{KindUint, 4}
	Uint64  = DType{KindUint, 8}
	Float32 = DType{KindFloat, 4}
	Float64 = DType{KindFloat, 8}
)

// Bytes returns the dtype of a fixed-width byte string of n bytes per element.
func Bytes(n int) DType {
	return DType{KindBytes, n}
}

// ItemSize returns the number of bytes one element occupies.
func (d DType) ItemSize() int {
	return d.Size
}

func (d DType) valid() bool {
	switch d.Kind {
	case KindBool:
		return d.Size == 1
	case KindInt, KindUint:
		return d.Size == 1 || d.Size == 2 || d.Size == 4 || d.Size == 8
	case KindFloat:
		return d.Size == 4 || d.Size == 8
	case KindBytes:
		return d.Size > 0
	}
	return false
}

// String returns the canonical ASCII type tag, eg "|b1", "<f4", "<i8", "|S50".
// The leading character records byte order: '<' for little-endian multi-byte
// elements, '|' where byte order is irrelevant.
func (d DType) String() string {
	var kind byte
	switch d.Kind {
	case KindBool:
		kind = 'b'
	case KindInt:
		kind = 'i'
	case KindUint:
		kind = 'u'
	case KindFloat:
		kind = 'f'
	case KindBytes:
		kind = 'S'
	default:
		return fmt.Sprintf("DType(%d,%d)", d.Kind, d.Size)
	}
	order := byte('<')
	if d.Size == 1 || d.Kind == KindBytes {
		order = '|'
	}
	return string([]byte{order, kind}) + strconv.Itoa(d.Size)
}

// ParseDType parses an ASCII type tag into a DType. Trailing and leading
// spaces (header padding) are ignored. Big-endian tags are rejected: the
// format is little-endian throughout.
func ParseDType(tag string) (DType, error) {
	s := strings.TrimSpace(tag)
	if len(s) < 3 {
		return DType{}, fmt.Errorf("arraymap: invalid type tag %q", tag)
	}

	order := s[0]
	if order != '<' && order != '|' {
		return DType{}, fmt.Errorf("arraymap: unsupported byte order in type tag %q", tag)
	}

	size, err := strconv.Atoi(s[2:])
	if err != nil || size <= 0 {
		return DType{}, fmt.Errorf("arraymap: invalid element size in type tag %q", tag)
	}

	var d DType
	switch s[1] {
	case 'b':
		d = DType{KindBool, size}
	case 'i':
		d = DType{KindInt, size}
	case 'u':
		d = DType{KindUint, size}
	case 'f':
		d = DType{KindFloat, size}
	case 'S':
		d = DType{KindBytes, size}
	default:
		return DType{}, fmt.Errorf("arraymap: unsupported element kind in type tag %q", tag)
	}
	if !d.valid() {
		return DType{}, fmt.Errorf("arraymap: unsupported type tag %q", tag)
	}
	return d, nil
}
