package arraymap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/samcharles93/arraymap/pkg/mmap"
)

// Open decodes the container header at path and returns one memory-mapped
// view per array, in descriptor order. The mode applies to every view.
//
// Open is a pure read: it never changes the file's state. Each returned view
// owns its own mapping and must be closed by the caller; there is no central
// tracking of open views.
func Open(path string, mode Mode) ([]*View, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	dtypes, shapes, _, err := readHeader(f)
	_ = f.Close()
	if err != nil {
		return nil, err
	}

	offsets, err := Offsets(dtypes, shapes)
	if err != nil {
		return nil, err
	}

	views := make([]*View, len(dtypes))
	for i := range dtypes {
		length := offsets[i+1] - offsets[i]
		region, err := mmap.Map(path, int64(offsets[i]), int(length), mode)
		if err != nil {
			for _, v := range views[:i] {
				_ = v.Close()
			}
			return nil, fmt.Errorf("arraymap: array %d: %w", i, err)
		}
		views[i] = &View{
			dtype:  dtypes[i],
			shape:  shapes[i],
			offset: offsets[i],
			region: region,
		}
	}
	return views, nil
}

// ReadHeader decodes just the header of the container at path: the dtype and
// shape of every stored array, without mapping any data. It fails with
// ErrNotFound when no file exists at path.
func ReadHeader(path string) ([]DType, [][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	dtypes, shapes, _, err := readHeader(f)
	return dtypes, shapes, err
}
