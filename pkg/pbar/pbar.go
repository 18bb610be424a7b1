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
package pbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const MinRefreshRate = time.Millisecond * 500

const barLength = 20

// ProgressBarState holds all the data needed to render the progress bar
type ProgressBarState struct {
	Out            io.Writer
	Total          int
	Processed      int
	StartTime      time.Time
	LastUpdateTime time.Time
}

// NewProgressBarState initializes a new ProgressBarState writing to out
func NewProgressBarState(out io.Writer, total int) *ProgressBarState {
	return &ProgressBarState{
		Out:       out,
		Total:     total,
		StartTime: time.Now(),
	}
}

// Update records the number of processed items and renders the bar
// if enough time elapsed since the last refresh.
func (pbs *ProgressBarState) Update(processed int) {
	pbs.Processed = processed
	pbs.Render(processed >= pbs.Total)
}

// Render updates and prints the progress bar line
func (pbs *ProgressBarState) Render(force bool) {
	if !force && !pbs.LastUpdateTime.IsZero() && time.Since(pbs.LastUpdateTime) < MinRefreshRate {
		return
	}

	percentage := 100.0
	if pbs.Total > 0 {
		percentage = float64(pbs.Processed) / float64(pbs.Total) * 100
	}

	filledLen := min(int(float64(barLength)*percentage/100), barLength)
	var bar string
	if filledLen == barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	var etaStr string
	elapsed := time.Since(pbs.StartTime).Seconds()
	if pbs.Processed > 0 && elapsed > 0 {
		rate := float64(pbs.Processed) / elapsed
		etaSeconds := float64(pbs.Total-pbs.Processed) / rate
		etaStr = fmt.Sprintf("%02d:%02d:%02d remaining",
			int(etaSeconds/3600),
			int(etaSeconds/60)%60,
			int(etaSeconds)%60)
	} else {
		etaStr = "calculating..."
	}

	pbs.LastUpdateTime = time.Now()

	// \r moves the cursor to the beginning of the line, trailing spaces clear
	// leftovers of a previous longer line
	fmt.Fprintf(pbs.Out, "\r[INFO] Progress: [%s] %3.0f%% (%d/%d regions) [%s]    ",
		bar,
		percentage,
		pbs.Processed,
		pbs.Total,
		etaStr)
}

// Finish prints a newline, effectively finishing the progress bar output
func (pbs *ProgressBarState) Finish() {
	fmt.Fprintln(pbs.Out)
}
