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
	"os"

	"github.com/ostafen/imgcarve/internal/detect"
	"github.com/ostafen/imgcarve/internal/logger"
	"github.com/spf13/cobra"
)

func DefineAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Detect files embedded in a binary file",
		Long: `The 'analyze' command scans a file for the signatures of the supported image formats
and prints, for each detected region, its position, size and a confidence score computed by validating the file structure.
Nothing is written to disk.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunAnalyze,
	}

	addDetectFlags(cmd)
	return cmd
}

func RunAnalyze(cmd *cobra.Command, args []string) error {
	types, err := parseTypes(cmd)
	if err != nil {
		return err
	}

	src, err := loadSource(cmd, args[0])
	if err != nil {
		return err
	}
	defer src.Close()

	parallel, _ := cmd.Flags().GetBool("parallel")

	d := detect.New(detect.Options{
		Logger:   logger.NewSlogWriter(os.Stderr, max(getLogLevel(cmd), logger.WarnLevel)),
		Parallel: parallel,
	})

	res := d.Analyze(src.Path, src.Data, types...)
	return res.WriteText(os.Stdout)
}
