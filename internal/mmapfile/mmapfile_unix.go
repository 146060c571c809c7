//go:build unix

package mmapfile

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Open memory-maps path read-only. On an empty file it returns a File with
// a nil Data slice rather than failing, since unix.Mmap rejects zero-length
// mappings.
func Open(path string) (*File, error) {
	fh, size, err := openFileOrFail(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	if size == 0 {
		return &File{Data: nil, closer: func() error { return nil }}, nil
	}

	data, err := unix.Mmap(int(fh.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmapfile: mmap %s: %w", path, err)
	}

	return &File{
		Data: data,
		closer: func() error {
			return unix.Munmap(data)
		},
	}, nil
}
