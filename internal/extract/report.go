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
	"strings"

	"github.com/ostafen/imgcarve/internal/env"
	"github.com/ostafen/imgcarve/pkg/dfxml"
)

// WriteReport renders a human readable report of the extraction.
// The output only depends on the content of the outcome.
func (o *Outcome) WriteReport(w io.Writer) error {
	bw := bufio.NewWriter(w)

	sep := strings.Repeat("=", 60)

	fmt.Fprintln(bw, sep)
	fmt.Fprintln(bw, "FILE EXTRACTION REPORT")
	fmt.Fprintln(bw, sep)
	fmt.Fprintf(bw, "Source file: %s\n", o.Source)
	fmt.Fprintf(bw, "Output directory: %s\n", o.OutputDir)
	fmt.Fprintf(bw, "Files extracted: %d\n", len(o.Extracted))
	fmt.Fprintf(bw, "Failed extractions: %d\n", len(o.Failed))
	fmt.Fprintf(bw, "Success rate: %.1f%%\n", o.SuccessRate()*100)
	fmt.Fprintln(bw)

	if len(o.Extracted) > 0 {
		fmt.Fprintln(bw, "SUCCESSFULLY EXTRACTED FILES:")
		fmt.Fprintln(bw, strings.Repeat("-", 40))

		for _, e := range o.Extracted {
			fmt.Fprintf(bw, "File %03d: %s\n", e.Number, e.Filename)
			fmt.Fprintf(bw, "  Type: %s (.%s)\n", e.Type, e.Ext)
			fmt.Fprintf(bw, "  Size: %d bytes\n", e.Size)
			fmt.Fprintf(bw, "  Original position: %s\n", position(e))
			fmt.Fprintf(bw, "  Confidence: %.2f\n", e.Confidence)
			fmt.Fprintf(bw, "  Checksum (xxh64): %016x\n", e.Checksum)
			fmt.Fprintf(bw, "  Saved to: %s\n", e.Path)
			fmt.Fprintln(bw)
		}
	}

	if len(o.Failed) > 0 {
		fmt.Fprintln(bw, "FAILED EXTRACTIONS:")
		fmt.Fprintln(bw, strings.Repeat("-", 20))

		for _, f := range o.Failed {
			fmt.Fprintf(bw, "File %03d: %s\n", f.Number, f.Type)
			fmt.Fprintf(bw, "  Reason: %s (%s)\n", f.Message, f.Reason)
			fmt.Fprintln(bw)
		}
	}

	fmt.Fprintln(bw, sep)
	return bw.Flush()
}

func position(e Entry) string {
	if !e.HasEnd {
		return fmt.Sprintf("%d-end", e.Start)
	}
	return fmt.Sprintf("%d-%d", e.Start, e.End)
}

// WriteDFXML writes a DFXML carve report listing every extracted file.
// Byte runs refer to the source image, so the report can be used to recover
// the same files again.
func (o *Outcome) WriteDFXML(w io.Writer, sourceSize uint64) error {
	rw := dfxml.NewDFXMLWriter(w)

	err := rw.WriteHeader(dfxml.DFXMLHeader{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata:  dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: dfxml.GetExecEnv(),
		},
		Source: dfxml.Source{
			ImageFilename: o.Source,
			SectorSize:    1,
			ImageSize:     sourceSize,
		},
	})
	if err != nil {
		return err
	}

	for _, e := range o.Extracted {
		err := rw.WriteFileObject(dfxml.FileObject{
			Filename:   e.Filename,
			FileSize:   uint64(e.Size),
			Format:     e.Type,
			Confidence: e.Confidence,
			ByteRuns: dfxml.ByteRuns{
				Runs: []dfxml.ByteRun{{
					Offset:    0,
					ImgOffset: uint64(e.Start),
					Length:    uint64(e.Size),
				}},
			},
			HashDigest: []dfxml.HashDigest{{
				Type:  "xxh64",
				Value: fmt.Sprintf("%016x", e.Checksum),
			}},
		})
		if err != nil {
			return err
		}
	}
	return rw.Close()
}
