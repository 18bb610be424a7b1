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

const pngHeader = "\x89PNG\r\n\x1a\n"

// validatePNG requires the IHDR chunk to immediately follow the signature.
// The first chunk starts after the 8 byte signature with a 4 byte length
// field, so its type tag is found at offset 12.
func validatePNG(buf []byte, start int) float64 {
	const ihdrOffset = len(pngHeader) + 4

	confidence := 1.0

	n := available(buf, start)
	switch {
	case n < len(pngHeader):
		return confidence * 0.2
	case n < ihdrOffset+4:
		return confidence * 0.3
	}

	confidence *= expect(buf, start+ihdrOffset, "IHDR", 0.4)
	return confidence
}
