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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/ostafen/imgcarve/internal/format"
	fmtutil "github.com/ostafen/imgcarve/pkg/util/format"
)

type AnalysisResult struct {
	Source     string
	TotalSize  int
	Regions    []Region
	Counts     map[string]int // type name -> number of regions
	Confidence ConfidenceSummary
}

// ConfidenceSummary aggregates the confidence of all detected regions.
// All fields are zero when nothing was detected.
type ConfidenceSummary struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// Analyze runs Detect over buf and tallies the detected regions per type.
func (d *Detector) Analyze(source string, buf []byte, types ...string) *AnalysisResult {
	regions := d.Detect(buf, types...)

	counts := make(map[string]int)
	for _, r := range regions {
		counts[r.Type]++
	}

	d.logger.Info("analysis completed",
		"source", source,
		"size", len(buf),
		"regions", len(regions),
	)

	return &AnalysisResult{
		Source:     source,
		TotalSize:  len(buf),
		Regions:    regions,
		Counts:     counts,
		Confidence: summarize(regions),
	}
}

func summarize(regions []Region) ConfidenceSummary {
	if len(regions) == 0 {
		return ConfidenceSummary{}
	}

	data := make(stats.Float64Data, len(regions))
	for i, r := range regions {
		data[i] = r.Confidence
	}

	// errors are only returned for empty input
	minv, _ := data.Min()
	maxv, _ := data.Max()
	mean, _ := data.Mean()
	median, _ := data.Median()

	return ConfidenceSummary{
		Min:    minv,
		Max:    maxv,
		Mean:   mean,
		Median: median,
	}
}

// WriteText renders a human readable description of the analysis.
func (res *AnalysisResult) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	sep := strings.Repeat("=", 60)

	fmt.Fprintln(bw, sep)
	fmt.Fprintln(bw, "FILE ANALYSIS RESULTS")
	fmt.Fprintln(bw, sep)
	fmt.Fprintf(bw, "Source file: %s\n", res.Source)
	fmt.Fprintf(bw, "Total file size: %d bytes (%s)\n", res.TotalSize, fmtutil.FormatBytes(int64(res.TotalSize)))
	fmt.Fprintf(bw, "Files detected: %d\n", len(res.Regions))
	fmt.Fprintln(bw)

	if len(res.Counts) > 0 {
		fmt.Fprintln(bw, "SUMMARY BY FILE TYPE:")
		fmt.Fprintln(bw, strings.Repeat("-", 30))
		for _, name := range format.Types() {
			if n, ok := res.Counts[name]; ok {
				fmt.Fprintf(bw, "  %s: %d file(s)\n", name, n)
			}
		}
		fmt.Fprintf(bw, "  confidence: min %.2f, max %.2f, mean %.2f, median %.2f\n",
			res.Confidence.Min,
			res.Confidence.Max,
			res.Confidence.Mean,
			res.Confidence.Median,
		)
		fmt.Fprintln(bw)
	}

	if len(res.Regions) == 0 {
		fmt.Fprintln(bw, "No embedded files detected.")
		fmt.Fprintf(bw, "Supported file types: %s\n", strings.Join(format.Types(), ", "))
		fmt.Fprintln(bw)
	} else {
		fmt.Fprintln(bw, "DETAILED DETECTION RESULTS:")
		fmt.Fprintln(bw, strings.Repeat("-", 40))

		for i, r := range res.Regions {
			fmt.Fprintf(bw, "File %d: %s (.%s)\n", i+1, r.Type, r.Signature.Ext)
			if size, ok := r.Size(); ok {
				fmt.Fprintf(bw, "  Position: %d - %d\n", r.Start, r.End)
				fmt.Fprintf(bw, "  Size: %d bytes\n", size)
			} else {
				fmt.Fprintf(bw, "  Position: %d - end\n", r.Start)
				fmt.Fprintln(bw, "  Size: unknown size")
			}
			fmt.Fprintf(bw, "  Confidence: %.2f\n", r.Confidence)
			fmt.Fprintf(bw, "  Description: %s\n", r.Signature.Description)
			fmt.Fprintln(bw)
		}
	}

	fmt.Fprintln(bw, sep)
	return bw.Flush()
}
