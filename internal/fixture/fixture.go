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
// Package fixture builds small, structurally valid image files and
// signature-free filler used to assemble synthetic disk images in tests.
package fixture

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"math/rand"
)

// JPEG returns a minimal JFIF stream of exactly 128 bytes ending with an EOI marker.
func JPEG() []byte {
	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xD8})
	// APP0 / JFIF 1.01, no thumbnail
	b.Write([]byte{0xFF, 0xE0, 0x00, 0x10})
	b.WriteString("JFIF\x00")
	b.Write([]byte{0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00})
	// DQT with a flat table
	b.Write([]byte{0xFF, 0xDB, 0x00, 0x43, 0x00})
	b.Write(bytes.Repeat([]byte{0x01}, 64))
	for b.Len() < 126 {
		b.WriteByte(0x02)
	}
	b.Write([]byte{0xFF, 0xD9})
	return b.Bytes()
}

// PNG returns a 1x1 RGB image made of IHDR, IDAT and IEND chunks.
func PNG() []byte {
	var b bytes.Buffer
	b.WriteString("\x89PNG\r\n\x1a\n")

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], 1)
	binary.BigEndian.PutUint32(ihdr[4:8], 1)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // truecolor
	writeChunk(&b, "IHDR", ihdr)

	// zlib stream of a single filtered scanline
	writeChunk(&b, "IDAT", []byte{0x78, 0x01, 0x63, 0x60, 0x60, 0x60, 0x00, 0x00, 0x00, 0x04, 0x00, 0x01})
	writeChunk(&b, "IEND", nil)
	return b.Bytes()
}

func writeChunk(b *bytes.Buffer, typ string, data []byte) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(len(data)))
	b.Write(tmp[:])

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)

	b.WriteString(typ)
	b.Write(data)
	binary.BigEndian.PutUint32(tmp[:], crc.Sum32())
	b.Write(tmp[:])
}

// GIF returns a 1x1 GIF89a image with a comment extension.
func GIF() []byte {
	var b bytes.Buffer
	b.WriteString("GIF89a")
	// logical screen descriptor, no global color table
	b.Write([]byte{0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00})
	// comment extension
	b.Write([]byte{0x21, 0xFE, 0x05})
	b.WriteString("hello")
	b.WriteByte(0x00)
	// image descriptor with a 2-entry local color table
	b.Write([]byte{0x2C, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x80})
	b.Write([]byte{0x00, 0x00, 0x00, 0x01, 0x01, 0x01})
	// image data
	b.Write([]byte{0x02, 0x02, 0x44, 0x01, 0x00})
	b.WriteByte(0x3B)
	return b.Bytes()
}

// WEBP returns a RIFF/WEBP container holding a lossless VP8L chunk.
func WEBP() []byte {
	payload := []byte{0x2F, 0x00, 0x00, 0x00, 0x00, 0x07, 0x10, 0x11, 0x11, 0x88, 0x88, 0x08}
	return riff("WEBP", "VP8L", payload)
}

// WAVE returns a RIFF container that is not a WEBP image.
func WAVE() []byte {
	return riff("WAVE", "fmt ", make([]byte, 16))
}

func riff(form, chunk string, payload []byte) []byte {
	var b bytes.Buffer
	var tmp [4]byte

	b.WriteString("RIFF")
	binary.LittleEndian.PutUint32(tmp[:], uint32(4+8+len(payload)))
	b.Write(tmp[:])
	b.WriteString(form)
	b.WriteString(chunk)
	binary.LittleEndian.PutUint32(tmp[:], uint32(len(payload)))
	b.Write(tmp[:])
	b.Write(payload)
	return b.Bytes()
}

// TIFF returns a 26 byte TIFF file with a single IFD entry.
// ifdOffset is written as the offset of the first IFD.
func TIFF(order binary.ByteOrder, ifdOffset uint32) []byte {
	buf := make([]byte, 26)
	if order == binary.BigEndian {
		copy(buf, "MM\x00*")
	} else {
		copy(buf, "II*\x00")
	}
	order.PutUint32(buf[4:8], ifdOffset)

	order.PutUint16(buf[8:10], 1)    // entry count
	order.PutUint16(buf[10:12], 256) // ImageWidth
	order.PutUint16(buf[12:14], 3)   // SHORT
	order.PutUint32(buf[14:18], 1)
	order.PutUint16(buf[18:20], 1)
	// next IFD offset: 0
	return buf
}

// forbidden contains the first byte of every registered start pattern.
var forbidden = [256]bool{
	0xFF: true,
	0x89: true,
	'G':  true,
	'R':  true,
	'I':  true,
	'M':  true,
}

// Filler returns n pseudo-random bytes, seeded deterministically, that can
// never contain a start pattern of a supported format.
func Filler(seed int64, n int) []byte {
	rng := rand.New(rand.NewSource(seed))

	buf := make([]byte, n)
	for i := range buf {
		b := byte(rng.Intn(256))
		for forbidden[b] {
			b = byte(rng.Intn(256))
		}
		buf[i] = b
	}
	return buf
}

// Concat joins parts into a single buffer, returning the offset of each part.
func Concat(parts ...[]byte) ([]byte, []int) {
	var buf []byte
	offsets := make([]int, len(parts))
	for i, p := range parts {
		offsets[i] = len(buf)
		buf = append(buf, p...)
	}
	return buf, offsets
}
