//go:build !unix

package mmapfile

import (
	"fmt"
	"os"
)

// Open is a portability fallback for platforms without unix.Mmap: it reads
// the whole file into memory. It is not the fast path this tool is designed
// around and is not exercised by the benchmarks implied by SPEC_FULL.md §2;
// it exists solely so the module still builds on non-Unix targets.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mmapfile: read %s: %w", path, err)
	}
	return &File{Data: data, closer: func() error { return nil }}, nil
}
