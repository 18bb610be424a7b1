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
	"encoding/binary"
)

const (
	tiffHeaderLittle = "\x49\x49\x2A\x00"
	tiffHeaderBig    = "\x4D\x4D\x00\x2A"

	tiffHeaderSize = 8
)

// validateTIFF checks the byte order mark and the offset of the first IFD,
// which must point inside the data following the header.
func validateTIFF(buf []byte, start int) float64 {
	confidence := 1.0

	n := available(buf, start)
	if n < len(tiffHeaderLittle) {
		return confidence * 0.2
	}

	var byteOrder binary.ByteOrder
	switch {
	case hasBytesAt(buf, start, tiffHeaderLittle):
		byteOrder = binary.LittleEndian
	case hasBytesAt(buf, start, tiffHeaderBig):
		byteOrder = binary.BigEndian
	default:
		return confidence * 0.2
	}

	if n < tiffHeaderSize {
		return confidence * 0.3
	}

	firstIFDOffset := uint64(byteOrder.Uint32(buf[start+4 : start+8]))
	if firstIFDOffset < tiffHeaderSize || firstIFDOffset > uint64(n) {
		confidence *= 0.5
	}
	return confidence
}
