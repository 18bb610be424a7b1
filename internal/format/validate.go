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

// Validate scores the structural plausibility of a file of kind k starting
// at start inside buf. The result lies in [0, 1]: 1 means every check passed,
// each failed check multiplies the score by a penalty factor.
//
// end is the exclusive end offset when known, or -1. None of the current
// validators need it, but it is part of the contract so that stricter
// checks can be added without changing callers.
func Validate(k Kind, buf []byte, start, end int) float64 {
	switch k {
	case JPEG:
		return validateJPEG(buf, start)
	case PNG:
		return validatePNG(buf, start)
	case GIF:
		return validateGIF(buf, start)
	case WEBP:
		return validateWEBP(buf, start)
	case TIFF:
		return validateTIFF(buf, start)
	}
	panic("format: unknown kind " + k.String())
}

// available returns the number of bytes of buf starting at off.
func available(buf []byte, off int) int {
	if off < 0 || off >= len(buf) {
		return 0
	}
	return len(buf) - off
}

// hasBytesAt reports whether buf contains lit at offset off.
// Out-of-range windows never match.
func hasBytesAt(buf []byte, off int, lit string) bool {
	if off < 0 || off+len(lit) > len(buf) {
		return false
	}
	return string(buf[off:off+len(lit)]) == lit
}

// expect returns 1 when lit is found at off, penalty otherwise.
func expect(buf []byte, off int, lit string, penalty float64) float64 {
	if hasBytesAt(buf, off, lit) {
		return 1.0
	}
	return penalty
}
