package arraymap

import (
	"os"
	"path/filepath"
)

// Create writes a new container holding the given arrays to path. Only the
// header is written: the data regions are left to materialize when the file
// is first mapped read-write, so a fresh container costs header-size bytes.
//
// An existing file at path is removed first. This replace-then-write sequence
// is not atomic: a concurrent Open during the window observes a missing or
// partially written file, and a failure after the remove leaves no usable
// file behind. Coordinating with other processes is the caller's job.
//
// If path names a single missing parent directory it is created; deeper
// missing ancestors are not.
func Create(path string, dtypes []DType, shapes [][]int) error {
	// Validate and encode before touching the filesystem.
	header, err := EncodeHeader(dtypes, shapes)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "." && dir != string(filepath.Separator) {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.Mkdir(dir, 0o755); err != nil {
				return err
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeFull(f, header); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeFull(f *os.File, p []byte) error {
	for len(p) > 0 {
		n, err := f.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
