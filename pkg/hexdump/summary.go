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
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/montanaflynn/stats"
)

// ByteCount is the number of occurrences of a byte value.
type ByteCount struct {
	Value byte
	Count int
}

type Summary struct {
	Name         string
	Size         int
	Lines        int
	UniqueBytes  int
	Printable    int
	NonPrintable int
	Frequency    [256]int

	// Entropy is the Shannon entropy of the byte distribution, in bits per byte.
	Entropy float64
	Mean    float64
	StdDev  float64
}

// Summarize computes byte statistics of data.
func Summarize(name string, data []byte) *Summary {
	s := &Summary{
		Name:  name,
		Size:  len(data),
		Lines: (len(data) + BytesPerLine - 1) / BytesPerLine,
	}

	for _, b := range data {
		s.Frequency[b]++

		if isPrintable(b) {
			s.Printable++
		} else {
			s.NonPrintable++
		}
	}

	if len(data) == 0 {
		return s
	}

	freq := make(stats.Float64Data, 0, 256)
	for _, n := range s.Frequency {
		if n > 0 {
			s.UniqueBytes++
			freq = append(freq, float64(n))
		}
	}

	if e, err := stats.Entropy(freq); err == nil {
		s.Entropy = e / math.Ln2
	}

	values := make(stats.Float64Data, len(data))
	for i, b := range data {
		values[i] = float64(b)
	}
	s.Mean, _ = values.Mean()
	s.StdDev, _ = values.StandardDeviation()

	return s
}

// Top returns the n most frequent byte values, by decreasing count.
// Values with the same count are ordered by value.
func (s *Summary) Top(n int) []ByteCount {
	counts := make([]ByteCount, 0, s.UniqueBytes)
	for v, c := range s.Frequency {
		if c > 0 {
			counts = append(counts, ByteCount{Value: byte(v), Count: c})
		}
	}

	slices.SortFunc(counts, func(a, b ByteCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return counts[:min(n, len(counts))]
}

func (s *Summary) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	sep := strings.Repeat("=", 50)

	fmt.Fprintln(bw, sep)
	fmt.Fprintln(bw, "HEX DATA SUMMARY")
	fmt.Fprintln(bw, sep)
	fmt.Fprintf(bw, "File: %s\n", s.Name)
	fmt.Fprintf(bw, "Size: %d bytes\n", s.Size)
	fmt.Fprintf(bw, "Lines: %d\n", s.Lines)
	fmt.Fprintf(bw, "Unique bytes: %d\n", s.UniqueBytes)
	fmt.Fprintf(bw, "Printable chars: %d\n", s.Printable)
	fmt.Fprintf(bw, "Non-printable chars: %d\n", s.NonPrintable)
	fmt.Fprintf(bw, "Entropy: %.4f bits/byte\n", s.Entropy)
	fmt.Fprintf(bw, "Byte mean: %.2f (stddev %.2f)\n", s.Mean, s.StdDev)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Most frequent bytes:")

	for _, bc := range s.Top(10) {
		pct := float64(bc.Count) / float64(s.Size) * 100
		fmt.Fprintf(bw, "  0x%02x ('%c'): %d times (%.1f%%)\n", bc.Value, printable(bc.Value), bc.Count, pct)
	}

	fmt.Fprintln(bw, sep)
	return bw.Flush()
}
