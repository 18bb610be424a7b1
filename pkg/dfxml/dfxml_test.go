package dfxml_test

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/ostafen/imgcarve/pkg/dfxml"
	"github.com/stretchr/testify/require"
)

func TestWriteReadReport(t *testing.T) {
	var buf bytes.Buffer

	w := dfxml.NewDFXMLWriter(&buf)
	err := w.WriteHeader(dfxml.DFXMLHeader{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata:  dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package:              "imgcarve",
			Version:              "test",
			ExecutionEnvironment: dfxml.GetExecEnv(),
		},
		Source: dfxml.Source{
			ImageFilename: "image.bin",
			SectorSize:    1,
			ImageSize:     4096,
		},
	})
	require.NoError(t, err)

	objs := []dfxml.FileObject{
		{
			Filename:   "file-001.jpg",
			FileSize:   128,
			Format:     "JPEG",
			Confidence: 0.9,
			ByteRuns: dfxml.ByteRuns{
				Runs: []dfxml.ByteRun{{ImgOffset: 1000, Length: 128}},
			},
			HashDigest: []dfxml.HashDigest{{Type: "xxh64", Value: "0123456789abcdef"}},
		},
		{
			Filename: "file-002.png",
			FileSize: 67,
			ByteRuns: dfxml.ByteRuns{
				Runs: []dfxml.ByteRun{{ImgOffset: 2000, Length: 67}},
			},
		},
	}
	for _, o := range objs {
		require.NoError(t, w.WriteFileObject(o))
	}
	require.Equal(t, 2, w.Count())
	require.NoError(t, w.Close())

	out := buf.String()
	require.True(t, strings.HasPrefix(out, xml.Header))
	require.Equal(t, 1, strings.Count(out, "<dfxml "))
	require.Contains(t, out, `xmloutputversion="1.0"`)
	require.Contains(t, out, `<byte_run offset="0" img_offset="1000" len="128"></byte_run>`)
	require.Contains(t, out, `<hashdigest type="xxh64">0123456789abcdef</hashdigest>`)
	require.NotContains(t, out, "<format></format>")

	report, err := dfxml.ReadReport(strings.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, "imgcarve", report.Creator.Package)
	require.Equal(t, "image.bin", report.Source.ImageFilename)
	require.Equal(t, uint64(4096), report.Source.ImageSize)
	require.Len(t, report.FileObjects, 2)

	got := report.FileObjects[0]
	require.Equal(t, "file-001.jpg", got.Filename)
	require.Equal(t, "JPEG", got.Format)
	require.Equal(t, 0.9, got.Confidence)
	require.Equal(t, uint64(1000), got.ByteRuns.Runs[0].ImgOffset)
	require.Equal(t, objs[0].HashDigest, got.HashDigest)

	fileObjs, err := dfxml.ReadFileObjects(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, fileObjs, 2)
}

func TestReadReport_Invalid(t *testing.T) {
	_, err := dfxml.ReadReport(strings.NewReader("<dfxml><fileobject><filesize>abc</filesize></fileobject></dfxml>"))
	require.Error(t, err)
}
