package arraymap

import "errors"

var (
	// ErrCountMismatch reports a dtype/shape length mismatch at creation.
	ErrCountMismatch = errors.New("arraymap: dtype and shape counts differ")

	// ErrNotFound reports an Open on a path with no existing file.
	ErrNotFound = errors.New("arraymap: file does not exist")

	// ErrCorruptHeader reports truncated or malformed header bytes.
	ErrCorruptHeader = errors.New("arraymap: corrupt header")

	// ErrReadOnly reports a write through a view opened with ReadOnly.
	ErrReadOnly = errors.New("arraymap: view is read-only")
)
