package arraymap

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"
	"unsafe"

	"github.com/samcharles93/arraymap/pkg/mmap"
)

// View is a typed, zero-copy window over one array's data region. Element
// layout is row-major little-endian. Views are independent of one another and
// of the container that produced them; each owns its mapping and must be
// closed by the caller.
//
// A scalar array (empty shape) occupies a zero-byte region, so its view has
// no addressable elements.
type View struct {
	dtype  DType
	shape  []int
	offset uint64
	region *mmap.Region
}

func (v *View) DType() DType { return v.dtype }

func (v *View) Shape() []int { return slices.Clone(v.shape) }

// Offset is the byte position within the file where this array's data begins.
func (v *View) Offset() uint64 { return v.offset }

func (v *View) Mode() Mode { return v.region.Mode() }

func (v *View) Writable() bool { return v.region.Writable() }

// Len returns the number of addressable elements: the product of the shape,
// or 0 for a scalar.
func (v *View) Len() int { return v.region.Len() / v.dtype.ItemSize() }

// Bytes returns the raw mapped bytes of the data region. The slice must not
// be retained after Close, and writing through it is only valid for
// read-write views.
func (v *View) Bytes() []byte { return v.region.Bytes() }

// Flush writes modified pages back to the file.
func (v *View) Flush() error { return v.region.Flush() }

// Close releases the view's mapping.
func (v *View) Close() error { return v.region.Close() }

// FlatIndex converts a row-major multi-dimensional index into a flat element
// index. The number of coordinates must match the array's rank.
func (v *View) FlatIndex(coords ...int) (int, error) {
	if len(coords) != len(v.shape) {
		return 0, fmt.Errorf("arraymap: got %d coordinates for rank-%d array", len(coords), len(v.shape))
	}
	flat := 0
	for d, c := range coords {
		if c < 0 || c >= v.shape[d] {
			return 0, fmt.Errorf("arraymap: coordinate %d out of range [0,%d)", c, v.shape[d])
		}
		flat = flat*v.shape[d] + c
	}
	return flat, nil
}

// Elem returns the zero-copy bytes of element i.
func (v *View) Elem(i int) ([]byte, error) {
	size := v.dtype.ItemSize()
	if i < 0 || (i+1)*size > v.region.Len() {
		return nil, fmt.Errorf("arraymap: element %d out of range [0,%d)", i, v.Len())
	}
	return v.region.Bytes()[i*size : (i+1)*size], nil
}

// SetElem overwrites element i with p, which must be exactly one item long.
// It fails with ErrReadOnly on a read-only view.
func (v *View) SetElem(i int, p []byte) error {
	if !v.region.Writable() {
		return ErrReadOnly
	}
	if len(p) != v.dtype.ItemSize() {
		return fmt.Errorf("arraymap: element is %d bytes, got %d", v.dtype.ItemSize(), len(p))
	}
	dst, err := v.Elem(i)
	if err != nil {
		return err
	}
	copy(dst, p)
	return nil
}

// Bool reads element i of a bool array.
func (v *View) Bool(i int) (bool, error) {
	if err := v.wantKind(KindBool); err != nil {
		return false, err
	}
	b, err := v.Elem(i)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (v *View) SetBool(i int, x bool) error {
	if err := v.wantKind(KindBool); err != nil {
		return err
	}
	var b byte
	if x {
		b = 1
	}
	return v.SetElem(i, []byte{b})
}

// Int reads element i of a signed integer array, widened to int64.
func (v *View) Int(i int) (int64, error) {
	if err := v.wantKind(KindInt); err != nil {
		return 0, err
	}
	b, err := v.Elem(i)
	if err != nil {
		return 0, err
	}
	switch len(b) {
	case 1:
		return int64(int8(b[0])), nil
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(b))), nil
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(b))), nil
	default:
		return int64(binary.LittleEndian.Uint64(b)), nil
	}
}

func (v *View) SetInt(i int, x int64) error {
	if err := v.wantKind(KindInt); err != nil {
		return err
	}
	return v.putWord(i, uint64(x))
}

// Uint reads element i of an unsigned integer array, widened to uint64.
func (v *View) Uint(i int) (uint64, error) {
	if err := v.wantKind(KindUint); err != nil {
		return 0, err
	}
	b, err := v.Elem(i)
	if err != nil {
		return 0, err
	}
	switch len(b) {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	default:
		return binary.LittleEndian.Uint64(b), nil
	}
}

func (v *View) SetUint(i int, x uint64) error {
	if err := v.wantKind(KindUint); err != nil {
		return err
	}
	return v.putWord(i, x)
}

// Float reads element i of a float array, widened to float64.
func (v *View) Float(i int) (float64, error) {
	if err := v.wantKind(KindFloat); err != nil {
		return 0, err
	}
	b, err := v.Elem(i)
	if err != nil {
		return 0, err
	}
	if len(b) == 4 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func (v *View) SetFloat(i int, x float64) error {
	if err := v.wantKind(KindFloat); err != nil {
		return err
	}
	if v.dtype.Size == 4 {
		return v.putWord(i, uint64(math.Float32bits(float32(x))))
	}
	return v.putWord(i, math.Float64bits(x))
}

func (v *View) putWord(i int, x uint64) error {
	if !v.region.Writable() {
		return ErrReadOnly
	}
	b, err := v.Elem(i)
	if err != nil {
		return err
	}
	switch len(b) {
	case 1:
		b[0] = byte(x)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(x))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(x))
	default:
		binary.LittleEndian.PutUint64(b, x)
	}
	return nil
}

func (v *View) wantKind(k Kind) error {
	if v.dtype.Kind != k {
		return fmt.Errorf("arraymap: dtype is %v", v.dtype)
	}
	return nil
}

// Zero-copy typed slices over the mapped region. These reinterpret the file
// bytes in place, so they are only meaningful on little-endian hosts, the
// region start must be naturally aligned for the element type, and writes
// through them fault on read-only views. The checked accessors above have
// none of these constraints.

func (v *View) Float32s() ([]float32, error) { return typedSlice[float32](v, Float32) }
func (v *View) Float64s() ([]float64, error) { return typedSlice[float64](v, Float64) }
func (v *View) Int8s() ([]int8, error)       { return typedSlice[int8](v, Int8) }
func (v *View) Int16s() ([]int16, error)     { return typedSlice[int16](v, Int16) }
func (v *View) Int32s() ([]int32, error)     { return typedSlice[int32](v, Int32) }
func (v *View) Int64s() ([]int64, error)     { return typedSlice[int64](v, Int64) }
func (v *View) Uint8s() ([]uint8, error)     { return typedSlice[uint8](v, Uint8) }
func (v *View) Uint16s() ([]uint16, error)   { return typedSlice[uint16](v, Uint16) }
func (v *View) Uint32s() ([]uint32, error)   { return typedSlice[uint32](v, Uint32) }
func (v *View) Uint64s() ([]uint64, error)   { return typedSlice[uint64](v, Uint64) }

func typedSlice[T any](v *View, want DType) ([]T, error) {
	if v.dtype != want {
		return nil, fmt.Errorf("arraymap: dtype is %v, not %v", v.dtype, want)
	}
	b := v.region.Bytes()
	if len(b) == 0 {
		return nil, nil
	}
	var zero T
	align := uintptr(unsafe.Alignof(zero))
	if uintptr(unsafe.Pointer(&b[0]))%align != 0 {
		return nil, fmt.Errorf("arraymap: region at offset %d is not %d-byte aligned for zero-copy access", v.offset, align)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/int(unsafe.Sizeof(zero))), nil
}
