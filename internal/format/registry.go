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
	"fmt"
	"strings"
)

// Kind identifies one of the supported image formats.
type Kind int

const (
	JPEG Kind = iota
	PNG
	GIF
	WEBP
	TIFF
)

func (k Kind) String() string {
	switch k {
	case JPEG:
		return "JPEG"
	case PNG:
		return "PNG"
	case GIF:
		return "GIF"
	case WEBP:
		return "WEBP"
	case TIFF:
		return "TIFF"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Signature describes how a format is located inside a raw buffer.
type Signature struct {
	Type        Kind
	Name        string // e.g. "JPEG"
	Ext         string // output file extension, without dot
	Description string

	StartPattern []byte
	EndPattern   []byte // nil when the format has no fixed trailer

	// MinSize is the smallest plausible size of a file of this format.
	// Smaller candidates are down-weighted, not discarded.
	MinSize int
}

var signatures = []Signature{
	{
		Type:         JPEG,
		Name:         "JPEG",
		Ext:          "jpg",
		Description:  "JPEG Image File (JFIF/Exif/Generic)",
		StartPattern: []byte{0xFF, 0xD8, 0xFF},
		EndPattern:   []byte{0xFF, 0xD9},
		MinSize:      100,
	},
	{
		Type:         PNG,
		Name:         "PNG",
		Ext:          "png",
		Description:  "Portable Network Graphics Image",
		StartPattern: []byte(pngHeader),
		EndPattern:   []byte("IEND\xaeB`\x82"),
		MinSize:      50,
	},
	{
		Type:         GIF,
		Name:         "GIF",
		Ext:          "gif",
		Description:  "Graphics Interchange Format Image",
		StartPattern: []byte("GIF8"),
		EndPattern:   []byte{0x00, 0x3B},
		MinSize:      35,
	},
	{
		Type:         WEBP,
		Name:         "WEBP",
		Ext:          "webp",
		Description:  "WebP Image Format",
		StartPattern: []byte(riffTag),
		MinSize:      20,
	},
	{
		Type:         TIFF,
		Name:         "TIFF",
		Ext:          "tiff",
		Description:  "Tagged Image File Format",
		StartPattern: []byte(tiffHeaderLittle),
		MinSize:      26,
	},
}

// Signatures returns the registry in its canonical order.
// The returned slice must not be modified.
func Signatures() []Signature {
	return signatures
}

// Lookup returns the signature registered under name. Matching is case-insensitive.
func Lookup(name string) (*Signature, bool) {
	for i := range signatures {
		if strings.EqualFold(signatures[i].Name, name) {
			return &signatures[i], true
		}
	}
	return nil, false
}

// Types returns the names of all supported formats, in registry order.
func Types() []string {
	names := make([]string, len(signatures))
	for i, sig := range signatures {
		names[i] = sig.Name
	}
	return names
}

// ValidateTypes checks that every name refers to a registered format
// and returns them in canonical spelling.
func ValidateTypes(names ...string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		sig, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unsupported file type %q (supported: %s)", name, strings.Join(Types(), ", "))
		}
		out = append(out, sig.Name)
	}
	return out, nil
}
