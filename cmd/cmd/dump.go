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

	"github.com/ostafen/imgcarve/internal/source"
	"github.com/ostafen/imgcarve/pkg/hexdump"
	"github.com/spf13/cobra"
)

func DefineDumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a hex dump of a file",
		Long: `The 'dump' command prints the content of a file as rows of 16 bytes, each showing the offset, the bytes in hexadecimal and their printable characters.
Use --offset and --length to restrict the dump to a range, for example to inspect a detected region.
With --summary, byte statistics (frequencies, printable characters, entropy) are printed as well.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunDump,
	}

	cmd.Flags().String("offset", "0", "offset of the first byte to dump")
	cmd.Flags().String("length", "", "number of bytes to dump (default: up to the end of the file)")
	cmd.Flags().BoolP("summary", "s", false, "print a statistical summary of the dumped bytes")
	cmd.Flags().Bool("summary-only", false, "print only the summary")

	return cmd
}

func RunDump(cmd *cobra.Command, args []string) error {
	offset, err := getBytes(cmd, "offset")
	if err != nil {
		return err
	}

	length, err := getBytes(cmd, "length")
	if err != nil {
		return err
	}

	src, err := source.Load(args[0])
	if err != nil {
		return err
	}
	defer src.Close()

	if offset > uint64(src.Size()) {
		return fmt.Errorf("offset %d is beyond file size %d", offset, src.Size())
	}

	data := src.Data[offset:]
	if length > 0 && length < uint64(len(data)) {
		data = data[:length]
	}

	summaryOnly, _ := cmd.Flags().GetBool("summary-only")
	if !summaryOnly {
		if err := hexdump.Dump(os.Stdout, src.Path, data); err != nil {
			return err
		}
	}

	if summary, _ := cmd.Flags().GetBool("summary"); summary || summaryOnly {
		fmt.Println()
		return hexdump.Summarize(src.Path, data).WriteText(os.Stdout)
	}
	return nil
}
