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
	sof0Marker  = 0xc0 // Start Of Frame (Baseline Sequential).
	sof15Marker = 0xcf // Start Of Frame (Differential Lossless, Arithmetic).
	dqtMarker   = 0xdb // Define Quantization Table.
	// "APPlication specific" markers aren't part of the JPEG spec per se,
	// but in practice, their use is described at
	// https://www.sno.phy.queensu.ca/~phil/exiftool/TagNames/JPEG.html
	app0Marker = 0xe0 // JFIF
	app1Marker = 0xe1 // Exif
	app8Marker = 0xe8 // SPIFF
)

// validateJPEG inspects the marker following the SOI marker and the
// application identifier that the common JPEG flavours carry.
//
// Branches are evaluated top to bottom and the first one matching wins:
// 0xC0 is handled as an explicit start-of-frame before the generic SOF range.
func validateJPEG(buf []byte, start int) float64 {
	confidence := 1.0

	if available(buf, start) < 4 {
		return confidence * 0.3
	}

	marker := buf[start+3]
	switch {
	case marker == app0Marker:
		confidence *= expect(buf, start+6, "JFIF", 0.8)
	case marker == app1Marker:
		confidence *= expect(buf, start+10, "Exif", 0.8)
	case marker == app8Marker:
		confidence *= expect(buf, start+6, "SPIFF", 0.7)
	case marker == dqtMarker, marker == sof0Marker:
		confidence *= 0.9
	case marker >= sof0Marker && marker <= sof15Marker:
		confidence *= 0.8
	default:
		confidence *= 0.6
	}
	return confidence
}
