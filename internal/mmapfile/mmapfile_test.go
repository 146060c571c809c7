package mmapfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vxgraph/louvain/internal/mmapfile"
)

func TestOpenReadsFileContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edges.txt")
	want := "1 2\n2 3\n"
	require.NoError(t, os.WriteFile(path, []byte(want), 0o644))

	f, err := mmapfile.Open(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, want, string(f.Data))
	require.NoError(t, f.Close())
	require.NoError(t, f.Close()) // idempotent
}

func TestOpenEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	f, err := mmapfile.Open(path)
	require.NoError(t, err)
	defer f.Close()

	require.Empty(t, f.Data)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := mmapfile.Open(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
