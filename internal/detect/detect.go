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
package detect

import (
	"cmp"
	"io"
	"log/slog"
	"runtime"
	"slices"

	"github.com/ostafen/imgcarve/internal/format"
	"golang.org/x/sync/errgroup"
)

// Region is a scored byte range hypothesised to hold an embedded file.
type Region struct {
	Type       string
	Start      int
	End        int // exclusive; meaningful only if HasEnd is true
	HasEnd     bool
	Signature  *format.Signature
	Confidence float64
}

// Size returns End-Start when the end of the region is known.
func (r *Region) Size() (int, bool) {
	if !r.HasEnd {
		return 0, false
	}
	return r.End - r.Start, true
}

type Options struct {
	Logger *slog.Logger

	// Parallel runs the search of each format in its own goroutine.
	Parallel bool
}

type Detector struct {
	logger   *slog.Logger
	parallel bool
}

func New(opts Options) *Detector {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Detector{
		logger:   logger,
		parallel: opts.Parallel,
	}
}

// Detect scans buf for every requested format, or for all registered formats
// if types is empty. Unknown type names are ignored.
//
// The result is sorted by start offset. Regions starting at the same offset
// keep registry order across formats and discovery order within a format.
func (d *Detector) Detect(buf []byte, types ...string) []Region {
	sigs := selectSignatures(types)

	perType := make([][]Region, len(sigs))
	scan := func(i int) {
		perType[i] = d.scanSignature(buf, sigs[i])
	}

	if d.parallel && len(sigs) > 1 {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := range sigs {
			g.Go(func() error {
				scan(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range sigs {
			scan(i)
		}
	}

	var regions []Region
	for _, rs := range perType {
		regions = append(regions, rs...)
	}

	slices.SortStableFunc(regions, func(a, b Region) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return regions
}

func (d *Detector) scanSignature(buf []byte, sig *format.Signature) []Region {
	candidates := format.Candidates(buf, sig)

	d.logger.Debug("signature scanned",
		"type", sig.Name,
		"candidates", len(candidates),
	)

	if len(candidates) == 0 {
		return nil
	}

	regions := make([]Region, len(candidates))
	for i, c := range candidates {
		regions[i] = Region{
			Type:       sig.Name,
			Start:      c.Start,
			End:        c.End,
			HasEnd:     c.HasEnd,
			Signature:  sig,
			Confidence: Score(buf, sig, c),
		}
	}
	return regions
}

// Score computes the confidence of a candidate as the product of the size
// floor check and the format validator.
func Score(buf []byte, sig *format.Signature, c format.Candidate) float64 {
	confidence := 1.0

	if c.HasEnd {
		if c.End-c.Start < sig.MinSize {
			confidence *= 0.3
		}
	} else if sig.MinSize > 0 && len(buf)-c.Start < sig.MinSize {
		confidence *= 0.5
	}

	end := -1
	if c.HasEnd {
		end = c.End
	}
	return confidence * format.Validate(sig.Type, buf, c.Start, end)
}

// selectSignatures returns the requested signatures in registry order.
func selectSignatures(types []string) []*format.Signature {
	all := format.Signatures()

	if len(types) == 0 {
		sigs := make([]*format.Signature, len(all))
		for i := range all {
			sigs[i] = &all[i]
		}
		return sigs
	}

	wanted := make(map[format.Kind]bool, len(types))
	for _, name := range types {
		if sig, ok := format.Lookup(name); ok {
			wanted[sig.Type] = true
		}
	}

	sigs := make([]*format.Signature, 0, len(wanted))
	for i := range all {
		if wanted[all[i].Type] {
			sigs = append(sigs, &all[i])
		}
	}
	return sigs
}
