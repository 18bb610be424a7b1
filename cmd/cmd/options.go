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
package cmd

import (
	"fmt"
	"os"

	"github.com/ostafen/imgcarve/internal/format"
	"github.com/ostafen/imgcarve/internal/logger"
	"github.com/ostafen/imgcarve/internal/source"
	fmtutil "github.com/ostafen/imgcarve/pkg/util/format"
	"github.com/spf13/cobra"
)

func addDetectFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("types", "t", nil, "file types to look for (default: all supported types)")
	cmd.Flags().Bool("parallel", false, "search each file type concurrently")
	cmd.Flags().String("max-scan-size", "", "max number of bytes to scan (e.g. 512MB)")
}

// parseTypes returns the canonical names of the requested types,
// rejecting the ones which are not supported.
func parseTypes(cmd *cobra.Command) ([]string, error) {
	types, _ := cmd.Flags().GetStringSlice("types")
	return format.ValidateTypes(types...)
}

func getBytes(cmd *cobra.Command, name string) (uint64, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return 0, nil
	}

	v, err := fmtutil.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid value for --%s: %w", name, err)
	}
	return v, nil
}

func getLogLevel(cmd *cobra.Command) logger.Level {
	level, _ := cmd.Flags().GetString("log-level")
	return logger.ParseLevel(level)
}

func newConsoleLogger(cmd *cobra.Command) *logger.Logger {
	return logger.New(os.Stdout, getLogLevel(cmd))
}

// loadSource loads the file at path, limiting its content to the
// value of the --max-scan-size flag, if any.
func loadSource(cmd *cobra.Command, path string) (*source.Source, error) {
	maxScanSize, err := getBytes(cmd, "max-scan-size")
	if err != nil {
		return nil, err
	}

	src, err := source.Load(path)
	if err != nil {
		return nil, err
	}

	if maxScanSize > 0 && uint64(src.Size()) > maxScanSize {
		src.Data = src.Data[:maxScanSize]
	}
	return src, nil
}
