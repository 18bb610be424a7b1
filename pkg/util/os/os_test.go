package os

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrepareDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "out", "nested")

	got, err := PrepareDir(dir, false)
	require.NoError(t, err)
	require.Equal(t, dir, got)

	stale := filepath.Join(dir, "stale.bin")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0644))

	_, err = PrepareDir(dir, false)
	require.NoError(t, err)
	require.FileExists(t, stale)

	_, err = PrepareDir(dir, true)
	require.NoError(t, err)
	require.NoFileExists(t, stale)

	empty, err := IsDirEmpty(dir)
	require.NoError(t, err)
	require.True(t, empty)

	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = PrepareDir(file, true)
	require.Error(t, err)
}

func TestListAndCopyFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "b"), []byte("bb"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "a"), []byte("a"), 0644))

	files, err := ListFiles(root)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "b"), filepath.Join(root, "sub", "a")}, files)

	single, err := ListFiles(files[0])
	require.NoError(t, err)
	require.Equal(t, files[:1], single)

	var buf bytes.Buffer
	for _, f := range files {
		_, err := CopyFile(&buf, f)
		require.NoError(t, err)
	}
	require.Equal(t, "bba", buf.String())
}
