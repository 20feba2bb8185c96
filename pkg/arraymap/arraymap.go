// Package arraymap implements a self-describing container format for stacking
// several numerically-typed, multi-dimensional arrays into a single file.
//
// A container begins with a fixed-field binary header describing how many
// arrays follow and, for each one, its element type and shape. The raw array
// data regions follow the header back to back, in descriptor order. Because
// the header fully determines the byte offset of every region, a container can
// be reopened later as zero-copy memory-mapped views without any ambiguity
// about type or shape.
//
// The file layout, little-endian throughout:
//
//	[0]       u64  N                     array count
//	repeat N:
//	  [+0] 8B  type tag (ASCII, space-padded)
//	  [+8] u64 D                         dimension count
//	  repeat D: u64 dimLength
//	-- end of header; data regions begin --
//	repeat N:
//	  ItemSize(tag) * product(shape) raw bytes
//
// The header is written once by Create and is immutable thereafter. Open never
// modifies the file. There is no locking: a single writer is assumed, and the
// remove-then-rewrite sequence in Create is not atomic with respect to other
// processes.
package arraymap

import "github.com/samcharles93/arraymap/pkg/mmap"

// Mode selects whether opened views accept writes. It applies uniformly to
// every view returned by Open; there is no per-array override.
type Mode = mmap.Mode

const (
	ReadWrite = mmap.ReadWrite
	ReadOnly  = mmap.ReadOnly
)
