package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/imgcarve/internal/fixture"
	"github.com/ostafen/imgcarve/internal/source"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	data, _ := fixture.Concat(fixture.Filler(7, 4096), fixture.JPEG(), fixture.Filler(8, 3000))

	path := filepath.Join(t.TempDir(), "image.bin")
	require.NoError(t, os.WriteFile(path, data, 0644))

	src, err := source.Load(path)
	require.NoError(t, err)
	require.Equal(t, path, src.Path)
	require.Equal(t, len(data), src.Size())
	require.Equal(t, data, src.Data)

	require.NoError(t, src.Close())
	require.Nil(t, src.Data)
	require.NoError(t, src.Close())
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	src, err := source.Load(path)
	require.NoError(t, err)
	require.Zero(t, src.Size())
	require.NoError(t, src.Close())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := source.Load(filepath.Join(dir, "missing.bin"))
	require.ErrorIs(t, err, source.ErrNotFound)

	_, err = source.Load(dir)
	require.ErrorIs(t, err, source.ErrIsDir)
}

func TestAssemble(t *testing.T) {
	records := []source.Record{
		{Offset: 32, Data: []byte("cccccccccccccccc")},
		{Offset: 0, Data: []byte("aaaaaaaaaaaaaaaa")},
		{Offset: 48, Data: []byte("dd")},
		{Offset: 16, Data: []byte("bbbbbbbbbbbbbbbb")},
	}

	buf := source.Assemble(records)
	require.Equal(t, "aaaaaaaaaaaaaaaabbbbbbbbbbbbbbbbccccccccccccccccdd", string(buf))
	require.Equal(t, 32, records[0].Offset)

	require.Empty(t, source.Assemble(nil))
}
