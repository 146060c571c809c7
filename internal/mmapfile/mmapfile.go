// Package mmapfile memory-maps a file read-only for the edge loader.
//
// The mapping is scoped to the lifetime of a single File value: callers must
// call Close when done, which unmaps (or, on the fallback path, simply
// releases) the backing buffer. The returned byte slice must not be used
// after Close.
package mmapfile

import (
	"fmt"
	"os"
)

// File is a read-only memory-mapped view of a file's contents.
type File struct {
	// Data is the mapped (or, on the fallback path, fully read) file content.
	Data []byte

	closer func() error
}

// Close releases the mapping. It is safe to call multiple times.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	closer := f.closer
	f.closer = nil
	return closer()
}

func openFileOrFail(path string) (*os.File, int64, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("mmapfile: open %s: %w", path, err)
	}
	info, err := fh.Stat()
	if err != nil {
		fh.Close()
		return nil, 0, fmt.Errorf("mmapfile: stat %s: %w", path, err)
	}
	return fh, info.Size(), nil
}
