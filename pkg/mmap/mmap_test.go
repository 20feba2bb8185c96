package mmap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestMapUnalignedOffset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.bin")
	content := []byte("0123456789abcdef")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := Map(path, 3, 5, ReadOnly)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	defer func() { _ = r.Close() }()

	if got := r.Bytes(); !bytes.Equal(got, []byte("34567")) {
		t.Fatalf("window: got %q, want %q", got, "34567")
	}
	if r.Len() != 5 {
		t.Fatalf("len: got %d, want 5", r.Len())
	}
	if r.Writable() {
		t.Fatalf("read-only region claims to be writable")
	}
}

func TestMapWriteAndFlush(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, make([]byte, 64), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := Map(path, 8, 4, ReadWrite)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	copy(r.Bytes(), "beef")
	if err := r.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	on, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(on[8:12], []byte("beef")) {
		t.Fatalf("write did not reach the file: %q", on[8:12])
	}
}

func TestMapExtendsShortFileReadWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte("header"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := Map(path, 100, 50, ReadWrite)
	if err != nil {
		t.Fatalf("map past EOF read-write: %v", err)
	}
	defer func() { _ = r.Close() }()

	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() != 150 {
		t.Fatalf("file size: got %d, want 150", st.Size())
	}
	for _, b := range r.Bytes() {
		if b != 0 {
			t.Fatalf("extended region is not zero-filled")
		}
	}
}

func TestMapShortFileReadOnlyFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte("header"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Map(path, 100, 50, ReadOnly); err == nil {
		t.Fatalf("expected error mapping past EOF read-only")
	}
}

func TestMapZeroLength(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := Map(path, 1, 0, ReadWrite)
	if err != nil {
		t.Fatalf("map zero length: %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("len: got %d, want 0", r.Len())
	}
	if err := r.Flush(); err != nil {
		t.Fatalf("flush empty region: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close empty region: %v", err)
	}
}

func TestMapSharedVisibility(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, make([]byte, 32), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := Map(path, 0, 32, ReadWrite)
	if err != nil {
		t.Fatalf("map writer: %v", err)
	}
	defer func() { _ = w.Close() }()
	r, err := Map(path, 0, 32, ReadOnly)
	if err != nil {
		t.Fatalf("map reader: %v", err)
	}
	defer func() { _ = r.Close() }()

	w.Bytes()[7] = 0xAB
	if r.Bytes()[7] != 0xAB {
		t.Fatalf("write not visible through overlapping mapping")
	}
}

func TestMapInvalidRange(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Map(path, -1, 4, ReadWrite); err == nil {
		t.Fatalf("expected error for negative offset")
	}
	if _, err := Map(path, 0, -4, ReadWrite); err == nil {
		t.Fatalf("expected error for negative length")
	}
}
