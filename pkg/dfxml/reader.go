package dfxml

import (
	"encoding/xml"
	"io"
)

// Report is the content of a DFXML carve report.
type Report struct {
	Creator     Creator
	Source      Source
	FileObjects []FileObject
}

// ReadReport parses the <creator> and <source> sections and every <fileobject>
// element of a DFXML document. Other elements are skipped.
func ReadReport(r io.Reader) (*Report, error) {
	dec := xml.NewDecoder(r)

	var report Report
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return &report, nil
		}
		if err != nil {
			return nil, err
		}

		startElem, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch startElem.Name.Local {
		case "creator":
			err = dec.DecodeElement(&report.Creator, &startElem)
		case "source":
			err = dec.DecodeElement(&report.Source, &startElem)
		case "fileobject":
			var fo FileObject
			err = dec.DecodeElement(&fo, &startElem)
			report.FileObjects = append(report.FileObjects, fo)
		}
		if err != nil {
			return nil, err
		}
	}
}

// ReadFileObjects parses and returns all <fileobject> elements from the reader.
func ReadFileObjects(r io.Reader) ([]FileObject, error) {
	report, err := ReadReport(r)
	if err != nil {
		return nil, err
	}
	return report.FileObjects, nil
}
