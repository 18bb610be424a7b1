// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package hexdump

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// BytesPerLine is the number of bytes rendered on each row.
const BytesPerLine = 16

// Line renders a single row: the offset as 8 hex digits, the bytes in hex
// padded to a full row and their printable representation.
//
//	00000000  ff d8 ff e0 00 10 4a 46 49 46 00 01 01 00 00 01  |......JFIF......|
func Line(offset int, row []byte) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%08x  ", offset)

	for i := 0; i < BytesPerLine; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}

		if i < len(row) {
			fmt.Fprintf(&sb, "%02x", row[i])
		} else {
			sb.WriteString("  ")
		}
	}

	sb.WriteString("  |")
	for _, b := range row {
		sb.WriteByte(printable(b))
	}
	sb.WriteByte('|')

	return sb.String()
}

// Dump writes a hex listing of data, framed by a header and a footer.
func Dump(w io.Writer, name string, data []byte) error {
	bw := bufio.NewWriter(w)

	sep := strings.Repeat("-", 80)

	fmt.Fprintf(bw, "Reading file: %s\n", name)
	fmt.Fprintf(bw, "File size: %d bytes\n", len(data))
	fmt.Fprintln(bw, sep)

	for off := 0; off < len(data); off += BytesPerLine {
		end := min(off+BytesPerLine, len(data))
		fmt.Fprintln(bw, Line(off, data[off:end]))
	}

	fmt.Fprintln(bw, sep)
	fmt.Fprintf(bw, "Total bytes read: %d\n", len(data))

	return bw.Flush()
}

func isPrintable(b byte) bool {
	return b >= 32 && b <= 126
}

func printable(b byte) byte {
	if isPrintable(b) {
		return b
	}
	return '.'
}
