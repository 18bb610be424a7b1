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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/ostafen/imgcarve/internal/detect"
	osutils "github.com/ostafen/imgcarve/pkg/util/os"
)

const (
	DefaultMinConfidence = 0.5

	// genericExt is used in place of the format extension when extensions are disabled.
	genericExt = "bin"
)

// ErrDestination is returned when the output directory cannot be prepared.
var ErrDestination = errors.New("cannot prepare output directory")

// Reason classifies why a region could not be extracted.
type Reason string

const (
	ReasonConfidence Reason = "low_confidence"
	ReasonSize       Reason = "too_small"
	ReasonWrite      Reason = "write_failed"
)

type Options struct {
	Source string // name of the scanned source, reported as is
	Dir    string
	Clean  bool // remove the content of Dir before extracting

	// Types restricts extraction to the given format names. Empty means all.
	Types         []string
	MinConfidence float64
	NoExtension   bool

	Logger     *slog.Logger
	OnProgress func(done, total int)
}

// DefaultOptions returns the options used when extracting to dir with no filter.
func DefaultOptions(dir string) Options {
	return Options{
		Dir:           dir,
		MinConfidence: DefaultMinConfidence,
	}
}

// Entry describes a successfully extracted file.
type Entry struct {
	Number     int
	Filename   string
	Type       string
	Ext        string
	Size       int
	Start      int
	End        int
	HasEnd     bool
	Confidence float64
	Path       string
	Checksum   uint64 // xxHash64 of the file content
}

// Failure describes a region that could not be extracted.
type Failure struct {
	Number  int
	Type    string
	Reason  Reason
	Message string
}

type Outcome struct {
	Source    string
	OutputDir string
	Extracted []Entry
	Failed    []Failure
}

// Attempted returns the number of regions for which extraction was attempted.
func (o *Outcome) Attempted() int {
	return len(o.Extracted) + len(o.Failed)
}

// SuccessRate is the fraction of attempted regions that were extracted,
// or 0 if nothing was attempted.
func (o *Outcome) SuccessRate() float64 {
	n := o.Attempted()
	if n == 0 {
		return 0
	}
	return float64(len(o.Extracted)) / float64(n)
}

// Export writes each region of buf to its own file inside opts.Dir.
//
// Regions are processed in the given order and numbered from 1. Every
// attempted region consumes a number, whether it succeeds or not, while
// regions excluded by opts.Types are skipped without consuming one.
// Per-region problems are recorded in the returned Outcome; the only error
// returned is a failure to prepare the output directory, wrapping ErrDestination.
func Export(buf []byte, regions []detect.Region, opts Options) (*Outcome, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dir, err := osutils.PrepareDir(opts.Dir, opts.Clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDestination, err)
	}

	out := &Outcome{
		Source:    opts.Source,
		OutputDir: dir,
	}

	counter := 1
	for i := range regions {
		r := &regions[i]

		if opts.OnProgress != nil {
			opts.OnProgress(i, len(regions))
		}

		if len(opts.Types) > 0 && !containsType(opts.Types, r.Type) {
			continue
		}

		num := counter
		counter++

		if r.Confidence < opts.MinConfidence {
			out.Failed = append(out.Failed, Failure{
				Number:  num,
				Type:    r.Type,
				Reason:  ReasonConfidence,
				Message: fmt.Sprintf("Low confidence score: %.2f < %.2f", r.Confidence, opts.MinConfidence),
			})
			continue
		}

		data := slice(buf, r)
		if len(data) < r.Signature.MinSize {
			out.Failed = append(out.Failed, Failure{
				Number:  num,
				Type:    r.Type,
				Reason:  ReasonSize,
				Message: fmt.Sprintf("File too small: %d < %d bytes", len(data), r.Signature.MinSize),
			})
			continue
		}

		ext := r.Signature.Ext
		if opts.NoExtension {
			ext = genericExt
		}
		name := Filename(num, ext)
		path := filepath.Join(dir, name)

		if err := os.WriteFile(path, data, 0644); err != nil {
			logger.Error("unable to write file", "path", path, "err", err)

			out.Failed = append(out.Failed, Failure{
				Number:  num,
				Type:    r.Type,
				Reason:  ReasonWrite,
				Message: fmt.Sprintf("Failed to save file to disk: %s", err),
			})
			continue
		}

		logger.Debug("file extracted", "path", path, "type", r.Type, "offset", r.Start, "size", len(data))

		out.Extracted = append(out.Extracted, Entry{
			Number:     num,
			Filename:   name,
			Type:       r.Type,
			Ext:        ext,
			Size:       len(data),
			Start:      r.Start,
			End:        r.End,
			HasEnd:     r.HasEnd,
			Confidence: r.Confidence,
			Path:       path,
			Checksum:   xxhash.Sum64(data),
		})
	}

	if opts.OnProgress != nil {
		opts.OnProgress(len(regions), len(regions))
	}
	return out, nil
}

// Filename returns the name of the n-th extracted file, e.g. "file-007.png".
func Filename(n int, ext string) string {
	return fmt.Sprintf("file-%03d.%s", n, ext)
}

// slice returns the bytes covered by r, or the bytes from r.Start to the end
// of buf when the end of the region is unknown.
func slice(buf []byte, r *detect.Region) []byte {
	if r.Start < 0 || r.Start > len(buf) {
		return nil
	}
	if !r.HasEnd {
		return buf[r.Start:]
	}
	return buf[r.Start:min(max(r.End, r.Start), len(buf))]
}

func containsType(types []string, name string) bool {
	return slices.ContainsFunc(types, func(t string) bool {
		return strings.EqualFold(t, name)
	})
}
