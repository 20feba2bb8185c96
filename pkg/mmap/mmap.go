// Package mmap provides page-cache-backed windows over byte ranges of a file.
//
// A Region is a zero-copy view of file bytes obtained with mmap(2). Writes
// through a read-write region become visible to other mappings of the same
// byte range according to the platform's standard memory-mapped-file coherency
// and flush semantics; nothing here strengthens or overrides them.
package mmap

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mode selects the access protection of a mapping.
type Mode int

const (
	ReadWrite Mode = iota
	ReadOnly
)

func (m Mode) String() string {
	switch m {
	case ReadWrite:
		return "read-write"
	case ReadOnly:
		return "read-only"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Region is a live mapping of length bytes starting at an arbitrary byte
// offset of a file. The requested offset need not be page-aligned: the
// mapping starts at the page boundary below it and Bytes slices out the
// requested window.
type Region struct {
	data []byte // requested window
	raw  []byte // full page-aligned mapping, nil for empty regions
	mode Mode
}

// Map maps length bytes of the file at path starting at offset.
//
// In ReadWrite mode a file shorter than offset+length is extended (zero-filled
// or sparse, per platform) so the whole window is addressable; this is what
// lets a container whose data regions were never written be opened for
// writing. In ReadOnly mode a too-short file is an error.
//
// A zero-length window yields an empty Region with no backing mapping.
func Map(path string, offset int64, length int, mode Mode) (*Region, error) {
	if offset < 0 || length < 0 {
		return nil, fmt.Errorf("mmap: invalid range offset=%d length=%d", offset, length)
	}

	flag := os.O_RDWR
	if mode == ReadOnly {
		flag = os.O_RDONLY
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	end := offset + int64(length)
	if end < offset {
		return nil, errors.New("mmap: range overflow")
	}
	if stat.Size() < end {
		if mode == ReadOnly {
			return nil, fmt.Errorf("mmap: file %s is %d bytes, need %d", path, stat.Size(), end)
		}
		if err := f.Truncate(end); err != nil {
			return nil, err
		}
	}

	if length == 0 {
		return &Region{mode: mode}, nil
	}

	// mmap offsets must be page-aligned; map from the page boundary below the
	// requested offset and keep the slack out of the caller's window.
	pageSize := int64(os.Getpagesize())
	pageOff := offset - offset%pageSize
	slack := int(offset - pageOff)

	prot := unix.PROT_READ
	if mode == ReadWrite {
		prot |= unix.PROT_WRITE
	}
	raw, err := unix.Mmap(int(f.Fd()), pageOff, slack+length, prot, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: map %s: %w", path, err)
	}

	return &Region{
		data: raw[slack : slack+length],
		raw:  raw,
		mode: mode,
	}, nil
}

// Bytes returns the mapped window. The slice must not be retained after
// Close. Writing through it is only valid for ReadWrite regions; a write to a
// ReadOnly mapping faults.
func (r *Region) Bytes() []byte {
	if r == nil {
		return nil
	}
	return r.data
}

func (r *Region) Len() int {
	if r == nil {
		return 0
	}
	return len(r.data)
}

func (r *Region) Mode() Mode {
	if r == nil {
		return ReadOnly
	}
	return r.mode
}

func (r *Region) Writable() bool {
	return r != nil && r.mode == ReadWrite
}

// Flush synchronously writes any modified pages of the window back to the
// file. It is a no-op for empty or read-only regions.
func (r *Region) Flush() error {
	if r == nil || r.raw == nil || r.mode != ReadWrite {
		return nil
	}
	return unix.Msync(r.raw, unix.MS_SYNC)
}

// Close releases the mapping. The Region must not be used afterwards.
func (r *Region) Close() error {
	if r == nil || r.raw == nil {
		r.reset()
		return nil
	}
	raw := r.raw
	r.reset()
	return unix.Munmap(raw)
}

func (r *Region) reset() {
	if r == nil {
		return
	}
	r.data = nil
	r.raw = nil
}
