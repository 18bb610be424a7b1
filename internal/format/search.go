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
package format

import (
	"bytes"
	"iter"
)

// FindAll returns a sequence over the start offsets of every occurrence of
// needle in haystack, in ascending order.
//
// After a match at position p the search resumes at p+1, so overlapping
// occurrences starting at different offsets are all reported, while each
// occurrence is reported exactly once. The sequence is lazy and can be
// iterated any number of times. An empty haystack or needle yields nothing.
func FindAll(haystack, needle []byte) iter.Seq[int] {
	return func(yield func(int) bool) {
		if len(haystack) == 0 || len(needle) == 0 {
			return
		}

		for from := 0; from <= len(haystack)-len(needle); {
			idx := bytes.Index(haystack[from:], needle)
			if idx < 0 {
				return
			}

			pos := from + idx
			if !yield(pos) {
				return
			}
			from = pos + 1
		}
	}
}

// Candidate is a hypothesised file location, before confidence scoring.
type Candidate struct {
	Start  int
	End    int // exclusive; meaningful only if HasEnd is true
	HasEnd bool
}

// Candidates locates every candidate region of sig inside buf.
//
// Offsets are reported in discovery order: for TIFF, little-endian hits
// precede big-endian hits. RIFF containers not tagged as WEBP are dropped
// before scoring.
func Candidates(buf []byte, sig *Signature) []Candidate {
	var starts []int
	for pos := range FindAll(buf, sig.StartPattern) {
		starts = append(starts, pos)
	}

	switch sig.Type {
	case TIFF:
		for pos := range FindAll(buf, []byte(tiffHeaderBig)) {
			starts = append(starts, pos)
		}
	case WEBP:
		starts = filterWEBP(buf, starts)
	}

	if len(starts) == 0 {
		return nil
	}

	candidates := make([]Candidate, len(starts))
	for i, start := range starts {
		c := Candidate{Start: start}
		if end, ok := FindEnd(buf, sig, start); ok {
			c.End = end
			c.HasEnd = true
		}
		candidates[i] = c
	}
	return candidates
}

// FindEnd searches for the first occurrence of the end pattern of sig
// located after the start pattern of a file beginning at start.
// The returned offset is exclusive, i.e. it points right after the end pattern.
func FindEnd(buf []byte, sig *Signature, start int) (int, bool) {
	if len(sig.EndPattern) == 0 {
		return 0, false
	}

	from := start + len(sig.StartPattern)
	if from > len(buf) {
		return 0, false
	}

	idx := bytes.Index(buf[from:], sig.EndPattern)
	if idx < 0 {
		return 0, false
	}
	return from + idx + len(sig.EndPattern), true
}

func filterWEBP(buf []byte, starts []int) []int {
	kept := starts[:0]
	for _, pos := range starts {
		if hasWEBPTag(buf, pos) {
			kept = append(kept, pos)
		}
	}
	return kept
}
