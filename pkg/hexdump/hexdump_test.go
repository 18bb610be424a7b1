package hexdump_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ostafen/imgcarve/pkg/hexdump"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	row := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00, 0x00, 0x01}

	require.Equal(t,
		"00000000  ff d8 ff e0 00 10 4a 46 49 46 00 01 01 00 00 01  |......JFIF......|",
		hexdump.Line(0, row),
	)

	short := hexdump.Line(0x20, []byte("AB"))
	require.Equal(t, "00000020  41 42"+strings.Repeat(" ", 42)+"  |AB|", short)
	require.Equal(t, len(hexdump.Line(0, row))-14, len(short))
}

func TestDump(t *testing.T) {
	data := []byte("0123456789abcdefXYZ")

	var buf bytes.Buffer
	require.NoError(t, hexdump.Dump(&buf, "sample.bin", data))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	require.Equal(t, "Reading file: sample.bin", lines[0])
	require.Equal(t, "File size: 19 bytes", lines[1])
	require.Equal(t, strings.Repeat("-", 80), lines[2])
	require.True(t, strings.HasPrefix(lines[3], "00000000  30 31"))
	require.True(t, strings.HasPrefix(lines[4], "00000010  58 59 5a"))
	require.True(t, strings.HasSuffix(lines[4], "|XYZ|"))
	require.Equal(t, "Total bytes read: 19", lines[6])
}

func TestSummarize(t *testing.T) {
	data := []byte{'A', 'A', 'A', 0x00, 0x00, 'B', 0xff, 'A'}

	s := hexdump.Summarize("x.bin", data)
	require.Equal(t, 8, s.Size)
	require.Equal(t, 1, s.Lines)
	require.Equal(t, 4, s.UniqueBytes)
	require.Equal(t, 5, s.Printable)
	require.Equal(t, 3, s.NonPrintable)
	require.Equal(t, 4, s.Frequency['A'])

	// p = {1/2, 1/4, 1/8, 1/8}
	require.InDelta(t, 1.75, s.Entropy, 1e-9)

	top := s.Top(10)
	require.Equal(t, []hexdump.ByteCount{
		{Value: 'A', Count: 4},
		{Value: 0x00, Count: 2},
		{Value: 'B', Count: 1},
		{Value: 0xff, Count: 1},
	}, top)
	require.Len(t, s.Top(2), 2)
}

func TestSummarize_Uniform(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	s := hexdump.Summarize("uniform", data)
	require.InDelta(t, 8.0, s.Entropy, 1e-9)
	require.InDelta(t, 127.5, s.Mean, 1e-9)
	require.Equal(t, 256, s.UniqueBytes)
}

func TestSummarize_Empty(t *testing.T) {
	s := hexdump.Summarize("empty", nil)
	require.Zero(t, s.Lines)
	require.Zero(t, s.UniqueBytes)
	require.Zero(t, s.Entropy)
	require.Empty(t, s.Top(10))

	var buf bytes.Buffer
	require.NoError(t, s.WriteText(&buf))
	require.Contains(t, buf.String(), "Unique bytes: 0")
}

func TestSummary_WriteText(t *testing.T) {
	s := hexdump.Summarize("x.bin", []byte("aab"))

	var buf bytes.Buffer
	require.NoError(t, s.WriteText(&buf))

	out := buf.String()
	require.Contains(t, out, "HEX DATA SUMMARY")
	require.Contains(t, out, "File: x.bin")
	require.Contains(t, out, "Printable chars: 3")
	require.Contains(t, out, "  0x61 ('a'): 2 times (66.7%)")
	require.Contains(t, out, "  0x62 ('b'): 1 times (33.3%)")
}
