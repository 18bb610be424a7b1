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
package source

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
)

var (
	ErrNotFound = errors.New("file not found")
	ErrIsDir    = errors.New("not a regular file")
)

// Source is the read-only content of a file loaded for scanning.
type Source struct {
	Path string
	Data []byte

	release func() error
}

// Size returns the number of bytes of the source.
func (s *Source) Size() int {
	return len(s.Data)
}

// Close releases the memory backing the source. Data must not be used afterwards.
func (s *Source) Close() error {
	if s.release == nil {
		return nil
	}

	err := s.release()
	s.release = nil
	s.Data = nil
	return err
}

// Load opens the file at path and maps it into memory. When mapping is not
// possible the whole file is read instead.
func Load(path string) (*Source, error) {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file info for %q: %w", path, err)
	}

	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrIsDir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	defer f.Close()

	if fi.Size() > 0 {
		data, release, err := mapFile(f, int(fi.Size()))
		if err == nil {
			return &Source{Path: path, Data: data, release: release}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return &Source{Path: path, Data: data}, nil
}

// Record is a fragment of a source located at Offset.
type Record struct {
	Offset int
	Data   []byte
}

// Assemble concatenates records in offset order into a contiguous buffer.
// Records are expected to be adjacent; gaps and overlaps are not detected.
func Assemble(records []Record) []byte {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	size := 0
	for _, r := range sorted {
		size += len(r.Data)
	}

	buf := make([]byte, 0, size)
	for _, r := range sorted {
		buf = append(buf, r.Data...)
	}
	return buf
}
