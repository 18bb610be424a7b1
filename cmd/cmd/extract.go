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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ostafen/imgcarve/internal/detect"
	"github.com/ostafen/imgcarve/internal/extract"
	"github.com/ostafen/imgcarve/internal/format"
	"github.com/ostafen/imgcarve/internal/logger"
	"github.com/ostafen/imgcarve/pkg/pbar"
	"github.com/spf13/cobra"
)

func DefineExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract the files embedded in a binary file",
		Long: `The 'extract' command detects the files embedded in a binary file and writes each of them
to the output directory as file-001.<ext>, file-002.<ext>, and so on.
Regions whose confidence is below --min-confidence are reported as failures and not written.
Optionally, a DFXML report of the extracted files is produced, which can be later used by the 'recover' and 'mount' commands.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunExtract,
	}

	addDetectFlags(cmd)

	cmd.Flags().StringP("output-dir", "o", "result", "directory where extracted files are written")
	cmd.Flags().Bool("clean", false, "remove the content of the output directory before extracting")
	cmd.Flags().Float64("min-confidence", extract.DefaultMinConfidence, "minimum confidence score of an extracted file")
	cmd.Flags().Bool("no-ext", false, "save all files with the generic .bin extension")
	cmd.Flags().StringP("report", "r", "", "path of the DFXML report file")
	cmd.Flags().Bool("no-log", false, "disable the detailed log file")
	cmd.Flags().Bool("quiet", false, "do not print the extraction report")

	return cmd
}

func RunExtract(cmd *cobra.Command, args []string) error {
	opts, err := parseExtractOptions(cmd)
	if err != nil {
		return err
	}

	types, err := parseTypes(cmd)
	if err != nil {
		return err
	}
	opts.Types = types

	src, err := loadSource(cmd, args[0])
	if err != nil {
		return err
	}
	defer src.Close()

	opts.Source = src.Path

	log := newConsoleLogger(cmd)

	var logFilePath string
	if noLog, _ := cmd.Flags().GetBool("no-log"); !noLog {
		logFilePath = absPath(opts.Dir) + "_" + time.Now().Format("20060102_150405") + ".log"
	}

	log.Info("Starting extraction...")
	log.Infof("Source: \t%s", absPath(src.Path))
	log.Infof("File Types: \t%s", strings.Join(typesOrAll(types), ","))
	log.Infof("Destination: \t%s", absPath(opts.Dir))

	slogger, logFile, err := logger.NewSlog(logFilePath, getLogLevel(cmd))
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	opts.Logger = slogger

	start := time.Now()

	parallel, _ := cmd.Flags().GetBool("parallel")

	d := detect.New(detect.Options{
		Logger:   slogger,
		Parallel: parallel,
	})
	res := d.Analyze(src.Path, src.Data, types...)

	log.Infof("Files detected: \t%d", len(res.Regions))

	if len(res.Regions) == 0 {
		log.Info("No files detected for extraction.")
		log.Infof("Supported file types: %s", strings.Join(format.Types(), ", "))
		return nil
	}

	pb := pbar.NewProgressBarState(os.Stdout, len(res.Regions))
	opts.OnProgress = func(done, _ int) {
		pb.Update(done)
	}

	out, err := extract.Export(src.Data, res.Regions, opts)
	if err != nil {
		return err
	}
	pb.Finish()

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		if err := out.WriteReport(os.Stdout); err != nil {
			return err
		}
	}

	reportFile, _ := cmd.Flags().GetString("report")
	if reportFile != "" {
		if err := writeDFXMLReport(reportFile, out, uint64(src.Size())); err != nil {
			return err
		}
		log.Infof("Report saved to: \t%s", absPath(reportFile))
	}

	log.Infof("Extraction completed! %d extracted, %d failed", len(out.Extracted), len(out.Failed))
	log.Infof("Duration: \t%s", FormatDurationHMS(time.Since(start)))

	if logFilePath != "" {
		log.Infof("Detailed log: \t%s", logFilePath)
	}
	return nil
}

func parseExtractOptions(cmd *cobra.Command) (extract.Options, error) {
	outDir, _ := cmd.Flags().GetString("output-dir")
	clean, _ := cmd.Flags().GetBool("clean")
	minConfidence, _ := cmd.Flags().GetFloat64("min-confidence")
	noExt, _ := cmd.Flags().GetBool("no-ext")

	if minConfidence < 0 || minConfidence > 1 {
		return extract.Options{}, fmt.Errorf("min-confidence must be in [0, 1], got %v", minConfidence)
	}

	return extract.Options{
		Dir:           outDir,
		Clean:         clean,
		MinConfidence: minConfidence,
		NoExtension:   noExt,
	}, nil
}

func writeDFXMLReport(path string, out *extract.Outcome, sourceSize uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := out.WriteDFXML(w, sourceSize); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func typesOrAll(types []string) []string {
	if len(types) == 0 {
		return []string{"all"}
	}
	return types
}

func absPath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

// FormatDurationHMS formats a time.Duration into HH:MM:SS string.
// It handles durations that might be less than an hour or greater than 24 hours.
func FormatDurationHMS(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	totalSeconds := int64(d.Seconds())

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
