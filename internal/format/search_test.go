package format_test

import (
	"bytes"
	"slices"
	"testing"

	"github.com/ostafen/imgcarve/internal/format"
	"github.com/stretchr/testify/require"
)

func TestFindAll_Overlapping(t *testing.T) {
	require.Equal(t, []int{0, 1}, slices.Collect(format.FindAll([]byte("aaa"), []byte("aa"))))
	require.Equal(t, []int{0, 1, 2, 3}, slices.Collect(format.FindAll([]byte("aaaaa"), []byte("aa"))))
}

func TestFindAll_Empty(t *testing.T) {
	require.Empty(t, slices.Collect(format.FindAll(nil, []byte("a"))))
	require.Empty(t, slices.Collect(format.FindAll([]byte("abc"), nil)))
	require.Empty(t, slices.Collect(format.FindAll([]byte("ab"), []byte("abc"))))
}

func TestFindAll_Restartable(t *testing.T) {
	seq := format.FindAll([]byte("xabxxabab"), []byte("ab"))

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Equal(t, []int{1, 5, 7}, first)
	require.Equal(t, first, second)

	// early termination
	for pos := range seq {
		require.Equal(t, 1, pos)
		break
	}
}

func TestFindAll_SingleSignatureOccurrence(t *testing.T) {
	for _, sig := range format.Signatures() {
		t.Run(sig.Name, func(t *testing.T) {
			for _, k := range []int{0, 1, 17, 300} {
				buf := make([]byte, k+len(sig.StartPattern)+64)
				copy(buf[k:], sig.StartPattern)

				require.Equal(t, []int{k}, slices.Collect(format.FindAll(buf, sig.StartPattern)))
			}
		})
	}
}

func TestCandidates_EndResolution(t *testing.T) {
	sig, ok := format.Lookup("JPEG")
	require.True(t, ok)

	buf := make([]byte, 0, 64)
	buf = append(buf, 0x00, 0x00)
	buf = append(buf, 0xFF, 0xD8, 0xFF, 0xE0)
	buf = append(buf, bytes.Repeat([]byte{0x11}, 10)...)
	buf = append(buf, 0xFF, 0xD9)
	buf = append(buf, 0x22, 0x22)

	cands := format.Candidates(buf, sig)
	require.Len(t, cands, 1)
	require.Equal(t, 2, cands[0].Start)
	require.True(t, cands[0].HasEnd)
	require.Equal(t, 18, cands[0].End)
}

func TestCandidates_EndSearchStartsAfterStartPattern(t *testing.T) {
	sig, ok := format.Lookup("GIF")
	require.True(t, ok)

	// the end pattern 00 3B must not be matched inside the start pattern region
	buf := []byte("GIF8")
	cands := format.Candidates(buf, sig)
	require.Len(t, cands, 1)
	require.False(t, cands[0].HasEnd)
}

func TestCandidates_NoEndPattern(t *testing.T) {
	sig, ok := format.Lookup("JPEG")
	require.True(t, ok)

	cands := format.Candidates([]byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00}, sig)
	require.Len(t, cands, 1)
	require.False(t, cands[0].HasEnd)
}

func TestCandidates_TIFFBothByteOrders(t *testing.T) {
	sig, ok := format.Lookup("TIFF")
	require.True(t, ok)

	buf := make([]byte, 64)
	copy(buf[30:], "MM\x00*")
	copy(buf[2:], "II*\x00")

	cands := format.Candidates(buf, sig)
	require.Len(t, cands, 2)
	require.Equal(t, 2, cands[0].Start)
	require.Equal(t, 30, cands[1].Start)
	require.False(t, cands[0].HasEnd)
	require.False(t, cands[1].HasEnd)
}

func TestCandidates_WEBPRejectsOtherRIFF(t *testing.T) {
	sig, ok := format.Lookup("WEBP")
	require.True(t, ok)

	buf := []byte("RIFF\x24\x00\x00\x00WAVEfmt RIFF\x10\x00\x00\x00WEBPVP8 ")
	cands := format.Candidates(buf, sig)
	require.Len(t, cands, 1)
	require.Equal(t, 16, cands[0].Start)

	require.Empty(t, format.Candidates([]byte("RIFF\x24\x00\x00\x00WAVE"), sig))
	// truncated container
	require.Empty(t, format.Candidates([]byte("RIFF\x24\x00\x00\x00WE"), sig))
}
