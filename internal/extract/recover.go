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
package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ostafen/imgcarve/pkg/dfxml"
)

// FileInfo locates a previously carved file inside a source image.
type FileInfo struct {
	Name   string
	Offset uint64
	Size   uint64
}

// FileInfos converts the file objects of a DFXML report. Only the first
// byte run of each object is considered, since carved files are contiguous.
func FileInfos(objs []dfxml.FileObject) ([]FileInfo, error) {
	finfos := make([]FileInfo, len(objs))
	for i, o := range objs {
		runs := o.ByteRuns.Runs
		if len(runs) < 1 {
			return nil, fmt.Errorf("invalid report file: %s has no byte runs", o.Filename)
		}

		if o.Filename == "" || filepath.Base(o.Filename) != o.Filename {
			return nil, fmt.Errorf("invalid report file: bad file name %q", o.Filename)
		}

		finfos[i] = FileInfo{
			Name:   o.Filename,
			Offset: runs[0].ImgOffset,
			Size:   runs[0].Length,
		}
	}
	return finfos, nil
}

// DumpFile copies the bytes described by finfo from r into a new file
// named after it inside dir.
func DumpFile(r io.ReaderAt, dir string, finfo *FileInfo) error {
	f, err := os.Create(filepath.Join(dir, finfo.Name))
	if err != nil {
		return fmt.Errorf("failed to create file %q: %w", finfo.Name, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1024*1024) // 1MB buffer

	sr := io.NewSectionReader(r, int64(finfo.Offset), int64(finfo.Size))
	n, err := io.Copy(w, sr)
	if err != nil {
		return err
	}
	if uint64(n) != finfo.Size {
		return fmt.Errorf("short read for %q: %d of %d bytes", finfo.Name, n, finfo.Size)
	}
	return w.Flush()
}
