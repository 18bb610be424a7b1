package format_test

import (
	"math/rand"
	"testing"

	"github.com/ostafen/imgcarve/internal/format"
	"github.com/stretchr/testify/require"
)

func jpegHeader(marker byte, rest string) []byte {
	return append([]byte{0xFF, 0xD8, 0xFF, marker}, rest...)
}

func TestValidateJPEG(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want float64
	}{
		{"jfif", jpegHeader(0xE0, "\x00\x10JFIF\x00\x01\x01"), 1.0},
		{"e0 without jfif", jpegHeader(0xE0, "\x00\x10ABCD\x00\x01\x01"), 0.8},
		{"exif", jpegHeader(0xE1, "\x00\x10\x00\x00\x00\x00Exif\x00\x00"), 1.0},
		{"e1 without exif", jpegHeader(0xE1, "\x00\x10\x00\x00\x00\x00XXXX\x00\x00"), 0.8},
		{"spiff", jpegHeader(0xE8, "\x00\x10SPIFF\x00\x01"), 1.0},
		{"e8 without spiff", jpegHeader(0xE8, "\x00\x10SPAFF\x00\x01"), 0.7},
		{"quantization table", jpegHeader(0xDB, "\x00\x43\x00\x00\x00\x00"), 0.9},
		{"start of frame", jpegHeader(0xC0, "\x00\x11\x08\x00\x00\x00"), 0.9},
		{"other sof", jpegHeader(0xC2, "\x00\x11\x08\x00\x00\x00"), 0.8},
		{"sof range end", jpegHeader(0xCF, "\x00\x11\x08\x00\x00\x00"), 0.8},
		{"unknown marker", jpegHeader(0xFE, "\x00\x11\x08\x00\x00\x00"), 0.6},
		{"too short", []byte{0xFF, 0xD8, 0xFF}, 0.3},
		{"jfif window missing", jpegHeader(0xE0, "\x00"), 0.8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, format.Validate(format.JPEG, tc.data, 0, -1), 1e-9)
		})
	}
}

func TestValidatePNG(t *testing.T) {
	valid := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR\x00\x00\x00\x01")
	require.InDelta(t, 1.0, format.Validate(format.PNG, valid, 0, -1), 1e-9)

	noIHDR := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dtEXt\x00\x00\x00\x01")
	require.InDelta(t, 0.4, format.Validate(format.PNG, noIHDR, 0, -1), 1e-9)

	require.InDelta(t, 0.3, format.Validate(format.PNG, valid[:12], 0, -1), 1e-9)
	require.InDelta(t, 0.2, format.Validate(format.PNG, valid[:5], 0, -1), 1e-9)

	shifted := append([]byte("garbage"), valid...)
	require.InDelta(t, 1.0, format.Validate(format.PNG, shifted, 7, -1), 1e-9)
}

func TestValidateGIF(t *testing.T) {
	require.InDelta(t, 1.0, format.Validate(format.GIF, []byte("GIF87a\x01\x00"), 0, -1), 1e-9)
	require.InDelta(t, 1.0, format.Validate(format.GIF, []byte("GIF89a\x01\x00"), 0, -1), 1e-9)
	require.InDelta(t, 0.3, format.Validate(format.GIF, []byte("GIF8xa\x01\x00"), 0, -1), 1e-9)
	require.InDelta(t, 0.2, format.Validate(format.GIF, []byte("GIF8"), 0, -1), 1e-9)
}

func TestValidateWEBP(t *testing.T) {
	require.InDelta(t, 1.0, format.Validate(format.WEBP, []byte("RIFF\x10\x00\x00\x00WEBPVP8 "), 0, -1), 1e-9)
	require.InDelta(t, 0.1, format.Validate(format.WEBP, []byte("RIFF\x10\x00\x00\x00WAVEfmt "), 0, -1), 1e-9)
	require.InDelta(t, 0.2, format.Validate(format.WEBP, []byte("RIFF\x10\x00"), 0, -1), 1e-9)
}

func TestValidateTIFF(t *testing.T) {
	little := []byte("II*\x00\x08\x00\x00\x00" + "\x00\x00\x00\x00\x00\x00\x00\x00")
	big := []byte("MM\x00*\x00\x00\x00\x08" + "\x00\x00\x00\x00\x00\x00\x00\x00")

	require.InDelta(t, 1.0, format.Validate(format.TIFF, little, 0, -1), 1e-9)
	require.InDelta(t, 1.0, format.Validate(format.TIFF, big, 0, -1), 1e-9)

	badOffset := []byte("II*\x00\x02\x00\x00\x00" + "\x00\x00\x00\x00\x00\x00\x00\x00")
	require.InDelta(t, 0.5, format.Validate(format.TIFF, badOffset, 0, -1), 1e-9)

	// offset pointing past the end of the available data
	beyond := []byte("MM\x00*\x00\x00\x01\x00" + "\x00\x00")
	require.InDelta(t, 0.5, format.Validate(format.TIFF, beyond, 0, -1), 1e-9)

	require.InDelta(t, 0.2, format.Validate(format.TIFF, []byte("IM*\x00\x08\x00\x00\x00"), 0, -1), 1e-9)
	require.InDelta(t, 0.3, format.Validate(format.TIFF, []byte("II*\x00\x08"), 0, -1), 1e-9)
	require.InDelta(t, 0.2, format.Validate(format.TIFF, []byte("II*"), 0, -1), 1e-9)
}

func TestValidate_ConfidenceBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	kinds := []format.Kind{format.JPEG, format.PNG, format.GIF, format.WEBP, format.TIFF}
	for i := 0; i < 2000; i++ {
		buf := make([]byte, rng.Intn(24))
		rng.Read(buf)

		start := 0
		if len(buf) > 0 {
			start = rng.Intn(len(buf) + 2)
		}

		for _, k := range kinds {
			c := format.Validate(k, buf, start, -1)
			require.GreaterOrEqual(t, c, 0.0)
			require.LessOrEqual(t, c, 1.0)
		}
	}
}
