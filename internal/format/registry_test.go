package format_test

import (
	"testing"

	"github.com/ostafen/imgcarve/internal/format"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	require.Equal(t, []string{"JPEG", "PNG", "GIF", "WEBP", "TIFF"}, format.Types())

	for _, sig := range format.Signatures() {
		require.NotEmpty(t, sig.StartPattern, sig.Name)
		require.GreaterOrEqual(t, sig.MinSize, 0, sig.Name)
		require.Equal(t, sig.Name, sig.Type.String())

		found, ok := format.Lookup(sig.Name)
		require.True(t, ok)
		require.Equal(t, sig.Type, found.Type)
	}

	sig, ok := format.Lookup("png")
	require.True(t, ok)
	require.Equal(t, "png", sig.Ext)

	_, ok = format.Lookup("BMP")
	require.False(t, ok)
}

func TestValidateTypes(t *testing.T) {
	names, err := format.ValidateTypes("jpeg", "Tiff")
	require.NoError(t, err)
	require.Equal(t, []string{"JPEG", "TIFF"}, names)

	_, err = format.ValidateTypes("JPEG", "PDF")
	require.Error(t, err)
}
