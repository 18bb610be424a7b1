package extract_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/ostafen/imgcarve/internal/detect"
	"github.com/ostafen/imgcarve/internal/extract"
	"github.com/ostafen/imgcarve/internal/fixture"
	"github.com/ostafen/imgcarve/internal/format"
	"github.com/ostafen/imgcarve/pkg/dfxml"
	"github.com/stretchr/testify/require"
)

func jpegRegion(t *testing.T, start, end int, confidence float64) detect.Region {
	sig, ok := format.Lookup("JPEG")
	require.True(t, ok)

	return detect.Region{
		Type:       sig.Name,
		Start:      start,
		End:        end,
		HasEnd:     true,
		Signature:  sig,
		Confidence: confidence,
	}
}

func TestExport_RoundTrip(t *testing.T) {
	jpeg := fixture.JPEG()
	png := fixture.PNG()

	buf, offsets := fixture.Concat(
		fixture.Filler(1, 100),
		jpeg,
		fixture.Filler(2, 200),
		png,
		fixture.Filler(3, 300),
	)

	regions := detect.New(detect.Options{}).Detect(buf)
	require.Len(t, regions, 2)

	dir := filepath.Join(t.TempDir(), "result")

	out, err := extract.Export(buf, regions, extract.DefaultOptions(dir))
	require.NoError(t, err)
	require.Equal(t, dir, out.OutputDir)
	require.Len(t, out.Extracted, 2)
	require.Empty(t, out.Failed)
	require.Equal(t, 1.0, out.SuccessRate())

	first := out.Extracted[0]
	require.Equal(t, 1, first.Number)
	require.Equal(t, "file-001.jpg", first.Filename)
	require.Equal(t, offsets[1], first.Start)
	require.Equal(t, offsets[1]+len(jpeg), first.End)
	require.Equal(t, xxhash.Sum64(jpeg), first.Checksum)

	second := out.Extracted[1]
	require.Equal(t, "file-002.png", second.Filename)
	require.Equal(t, len(png), second.Size)

	data, err := os.ReadFile(filepath.Join(dir, "file-001.jpg"))
	require.NoError(t, err)
	require.Equal(t, buf[regions[0].Start:regions[0].End], data)
	require.Equal(t, jpeg, data)

	data, err = os.ReadFile(filepath.Join(dir, "file-002.png"))
	require.NoError(t, err)
	require.Equal(t, png, data)
}

func TestExport_FailureAccounting(t *testing.T) {
	jpeg := fixture.JPEG()
	buf, offsets := fixture.Concat(jpeg, jpeg, jpeg)

	regions := []detect.Region{
		jpegRegion(t, offsets[0], offsets[0]+len(jpeg), 0.9),
		jpegRegion(t, offsets[1], offsets[1]+len(jpeg), 0.3),
		jpegRegion(t, offsets[2], offsets[2]+len(jpeg), 0.9),
	}

	dir := t.TempDir()
	out, err := extract.Export(buf, regions, extract.DefaultOptions(dir))
	require.NoError(t, err)

	require.Len(t, out.Extracted, 2)
	require.Len(t, out.Failed, 1)
	require.Equal(t, 3, out.Attempted())
	require.InDelta(t, 2.0/3.0, out.SuccessRate(), 1e-9)

	require.Equal(t, extract.ReasonConfidence, out.Failed[0].Reason)
	require.Equal(t, 2, out.Failed[0].Number)
	require.Equal(t, "Low confidence score: 0.30 < 0.50", out.Failed[0].Message)

	require.Equal(t, "file-001.jpg", out.Extracted[0].Filename)
	require.Equal(t, "file-003.jpg", out.Extracted[1].Filename)
	require.NoFileExists(t, filepath.Join(dir, "file-002.jpg"))
}

func TestExport_NoRegions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "empty")

	out, err := extract.Export(nil, nil, extract.DefaultOptions(dir))
	require.NoError(t, err)
	require.Zero(t, out.Attempted())
	require.Equal(t, 0.0, out.SuccessRate())
	require.DirExists(t, dir)
}

func TestExport_SizeFailure(t *testing.T) {
	jpeg := fixture.JPEG()
	buf, _ := fixture.Concat(jpeg, jpeg)

	regions := []detect.Region{
		jpegRegion(t, 0, 40, 1.0),
		jpegRegion(t, 128, 256, 1.0),
	}

	out, err := extract.Export(buf, regions, extract.DefaultOptions(t.TempDir()))
	require.NoError(t, err)
	require.Len(t, out.Failed, 1)
	require.Equal(t, extract.ReasonSize, out.Failed[0].Reason)
	require.Equal(t, 1, out.Failed[0].Number)

	require.Len(t, out.Extracted, 1)
	require.Equal(t, "file-002.jpg", out.Extracted[0].Filename)
}

func TestExport_UnknownEnd(t *testing.T) {
	jpeg := fixture.JPEG()
	buf, _ := fixture.Concat(fixture.Filler(1, 10), jpeg[:120])

	r := jpegRegion(t, 10, 0, 0.6)
	r.HasEnd = false

	out, err := extract.Export(buf, []detect.Region{r}, extract.DefaultOptions(t.TempDir()))
	require.NoError(t, err)
	require.Len(t, out.Extracted, 1)
	require.Equal(t, 120, out.Extracted[0].Size)
	require.False(t, out.Extracted[0].HasEnd)

	data, err := os.ReadFile(out.Extracted[0].Path)
	require.NoError(t, err)
	require.Equal(t, buf[10:], data)
}

func TestExport_TypeFilterAndExtension(t *testing.T) {
	buf, _ := fixture.Concat(fixture.PNG(), fixture.JPEG(), fixture.PNG())
	regions := detect.New(detect.Options{}).Detect(buf)
	require.Len(t, regions, 3)

	opts := extract.DefaultOptions(t.TempDir())
	opts.Types = []string{"png"}
	opts.NoExtension = true

	out, err := extract.Export(buf, regions, opts)
	require.NoError(t, err)
	require.Len(t, out.Extracted, 2)
	require.Empty(t, out.Failed)

	// skipped regions do not consume a number
	require.Equal(t, "file-001.bin", out.Extracted[0].Filename)
	require.Equal(t, "file-002.bin", out.Extracted[1].Filename)
	require.Equal(t, "PNG", out.Extracted[1].Type)
}

func TestExport_CleanDestination(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	opts := extract.DefaultOptions(dir)
	_, err := extract.Export(nil, nil, opts)
	require.NoError(t, err)
	require.FileExists(t, stale)

	opts.Clean = true
	_, err = extract.Export(nil, nil, opts)
	require.NoError(t, err)
	require.NoFileExists(t, stale)
	require.DirExists(t, dir)
}

func TestExport_DestinationError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := extract.Export(nil, nil, extract.DefaultOptions(file))
	require.ErrorIs(t, err, extract.ErrDestination)
}

func TestExport_WriteFailureIsIsolated(t *testing.T) {
	jpeg := fixture.JPEG()
	buf, offsets := fixture.Concat(jpeg, jpeg)

	dir := t.TempDir()
	// a directory occupying the first output name makes the write fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "file-001.jpg"), 0755))

	regions := []detect.Region{
		jpegRegion(t, offsets[0], offsets[0]+len(jpeg), 1.0),
		jpegRegion(t, offsets[1], offsets[1]+len(jpeg), 1.0),
	}

	var progress []int
	opts := extract.DefaultOptions(dir)
	opts.OnProgress = func(done, total int) {
		require.Equal(t, 2, total)
		progress = append(progress, done)
	}

	out, err := extract.Export(buf, regions, opts)
	require.NoError(t, err)
	require.Len(t, out.Failed, 1)
	require.Equal(t, extract.ReasonWrite, out.Failed[0].Reason)
	require.Len(t, out.Extracted, 1)
	require.Equal(t, "file-002.jpg", out.Extracted[0].Filename)
	require.InDelta(t, 0.5, out.SuccessRate(), 1e-9)
	require.Equal(t, []int{0, 1, 2}, progress)
}

func TestOutcome_WriteReport(t *testing.T) {
	jpeg := fixture.JPEG()
	buf, offsets := fixture.Concat(jpeg, jpeg)

	regions := []detect.Region{
		jpegRegion(t, offsets[0], offsets[0]+len(jpeg), 1.0),
		jpegRegion(t, offsets[1], offsets[1]+len(jpeg), 0.1),
	}

	opts := extract.DefaultOptions(t.TempDir())
	opts.Source = "disk.img"

	out, err := extract.Export(buf, regions, opts)
	require.NoError(t, err)

	var first, second bytes.Buffer
	require.NoError(t, out.WriteReport(&first))
	require.NoError(t, out.WriteReport(&second))
	require.Equal(t, first.String(), second.String())

	report := first.String()
	require.Contains(t, report, "Source file: disk.img")
	require.Contains(t, report, "Success rate: 50.0%")
	require.Contains(t, report, "File 001: file-001.jpg")
	require.Contains(t, report, "Original position: 0-128")
	require.Contains(t, report, "File 002: JPEG")
	require.Contains(t, report, "low_confidence")
}

func TestOutcome_DFXMLRecover(t *testing.T) {
	jpeg := fixture.JPEG()
	png := fixture.PNG()
	buf, _ := fixture.Concat(fixture.Filler(1, 50), png, fixture.Filler(2, 50), jpeg)

	regions := detect.New(detect.Options{}).Detect(buf)

	out, err := extract.Export(buf, regions, extract.DefaultOptions(t.TempDir()))
	require.NoError(t, err)
	require.Len(t, out.Extracted, 2)

	var report bytes.Buffer
	require.NoError(t, out.WriteDFXML(&report, uint64(len(buf))))

	objs, err := dfxml.ReadFileObjects(&report)
	require.NoError(t, err)
	require.Len(t, objs, 2)
	require.Equal(t, "PNG", objs[0].Format)
	require.Equal(t, "xxh64", objs[0].HashDigest[0].Type)

	finfos, err := extract.FileInfos(objs)
	require.NoError(t, err)

	recovered := t.TempDir()
	for i := range finfos {
		require.NoError(t, extract.DumpFile(bytes.NewReader(buf), recovered, &finfos[i]))
	}

	data, err := os.ReadFile(filepath.Join(recovered, "file-001.png"))
	require.NoError(t, err)
	require.Equal(t, png, data)

	data, err = os.ReadFile(filepath.Join(recovered, "file-002.jpg"))
	require.NoError(t, err)
	require.Equal(t, jpeg, data)
}

func TestFileInfos_Invalid(t *testing.T) {
	_, err := extract.FileInfos([]dfxml.FileObject{{Filename: "a.jpg"}})
	require.Error(t, err)

	_, err = extract.FileInfos([]dfxml.FileObject{{
		Filename: "../escape.jpg",
		ByteRuns: dfxml.ByteRuns{Runs: []dfxml.ByteRun{{Length: 1}}},
	}})
	require.Error(t, err)
}
