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
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ostafen/imgcarve/internal/extract"
	"github.com/ostafen/imgcarve/internal/logger"
	"github.com/ostafen/imgcarve/internal/source"
	"github.com/ostafen/imgcarve/pkg/dfxml"
	osutils "github.com/ostafen/imgcarve/pkg/util/os"
	"github.com/spf13/cobra"
)

func DefineRecoverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover <file> <report_file>",
		Short: "Recover files from a binary file using an extraction report",
		Long: `The 'recover' command extracts files from a binary file based on the information provided in a DFXML report
produced by 'extract --report'. The report lists the name, position and size of every file.
Recovered files will be saved to the specified output directory.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunRecover,
	}
	cmd.Flags().StringP("output-dir", "o", "", "Path of the directory where recovered data will be placed.")
	return cmd
}

func RunRecover(cmd *cobra.Command, args []string) error {
	src, err := source.Load(args[0])
	if err != nil {
		return err
	}
	defer src.Close()

	log := newConsoleLogger(cmd)

	finfos, err := readReport(args[1], src, log)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	if outDir == "" {
		wdir, err := os.Getwd()
		if err != nil {
			return err
		}

		base := filepath.Base(args[1])
		name := strings.TrimSuffix(base, filepath.Ext(base))
		outDir = filepath.Join(wdir, name+"-dump")
	}

	outDir, err = osutils.PrepareDir(outDir, false)
	if err != nil {
		return err
	}

	r := bytes.NewReader(src.Data)

	recovered := 0
	for _, finfo := range finfos {
		log.Debugf("recovering file %s", filepath.Join(outDir, finfo.Name))

		if err := extract.DumpFile(r, outDir, &finfo); err != nil {
			log.Errorf("unable to dump file %s: %s", finfo.Name, err)
			continue
		}
		recovered++
	}

	log.Infof("Recovered %d of %d files to %s", recovered, len(finfos), outDir)
	return nil
}

// readReport returns the files listed in the DFXML report at path,
// warning when the report was produced from a source of a different size.
func readReport(path string, src *source.Source, log *logger.Logger) ([]extract.FileInfo, error) {
	reportFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer reportFile.Close()

	report, err := dfxml.ReadReport(bufio.NewReader(reportFile))
	if err != nil {
		return nil, err
	}

	if size := report.Source.ImageSize; size != 0 && size != uint64(src.Size()) {
		log.Warnf("report refers to a source of %d bytes, %s is %d bytes", size, src.Path, src.Size())
	}
	return extract.FileInfos(report.FileObjects)
}
