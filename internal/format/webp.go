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

const (
	riffTag = "RIFF"
	webpTag = "WEBP"

	// RIFF tag followed by the little-endian chunk size.
	webpTagOffset = 8
)

// hasWEBPTag reports whether the RIFF container at pos declares a WEBP form type.
func hasWEBPTag(buf []byte, pos int) bool {
	return hasBytesAt(buf, pos+webpTagOffset, webpTag)
}

// validateWEBP re-checks the form type independently from the search stage.
func validateWEBP(buf []byte, start int) float64 {
	confidence := 1.0

	if available(buf, start) < webpTagOffset+len(webpTag) {
		return confidence * 0.2
	}

	if !hasWEBPTag(buf, start) {
		confidence *= 0.1
	}
	return confidence
}
