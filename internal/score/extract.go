package score

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
)

// ErrNoSheets is returned when a recognizer output archive contains no
// sheet XML documents at all, which usually means the recognizer aborted
// after creating the project file.
var ErrNoSheets = errors.New("recognizer output contains no sheet data")

// interElement mirrors one interpretation node in an Audiveris sheet XML
// document. Only the attributes this tool needs are decoded; everything
// else in the subtree is discarded.
type interElement struct {
	Shape  string       `xml:"shape,attr"`
	Bounds *boundsChild `xml:"bounds"`
}

type boundsChild struct {
	X int `xml:"x,attr"`
	Y int `xml:"y,attr"`
	W int `xml:"w,attr"`
	H int `xml:"h,attr"`
}

// ParseRecognizerOutput reads an Audiveris output file and returns the
// supported symbol detections in document order.
//
// The file may be an .omr archive (ZIP of per-sheet XML documents) or a
// bare sheet XML file; the format is sniffed, not derived from the
// extension. Interpretations whose shape does not classify to a supported
// SymbolType, or which carry no bounds, are skipped.
func ParseRecognizerOutput(outputPath string) ([]Detection, error) {
	if _, err := os.Stat(outputPath); err != nil {
		return nil, fmt.Errorf("recognizer output missing: %w", err)
	}

	archive, err := zip.OpenReader(outputPath)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return parseSheetFile(outputPath)
		}
		return nil, fmt.Errorf("opening recognizer output %s: %w", outputPath, err)
	}
	defer archive.Close()

	sheets := sheetEntries(&archive.Reader)
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSheets, outputPath)
	}

	var detections []Detection
	for _, entry := range sheets {
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("opening sheet %s: %w", entry.Name, err)
		}
		dets, err := parseSheet(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing sheet %s: %w", entry.Name, err)
		}
		detections = append(detections, dets...)
	}
	return detections, nil
}

// sheetEntries returns the archive's sheet XML entries sorted by name so
// multi-page scores produce detections in page order.
func sheetEntries(r *zip.Reader) []*zip.File {
	var sheets []*zip.File
	for _, f := range r.File {
		name := path.Base(f.Name)
		if strings.HasPrefix(name, "sheet#") && strings.HasSuffix(name, ".xml") {
			sheets = append(sheets, f)
		}
	}
	sort.Slice(sheets, func(i, j int) bool { return sheets[i].Name < sheets[j].Name })
	return sheets
}

func parseSheetFile(sheetPath string) ([]Detection, error) {
	f, err := os.Open(sheetPath)
	if err != nil {
		return nil, fmt.Errorf("opening sheet XML: %w", err)
	}
	defer f.Close()

	dets, err := parseSheet(f)
	if err != nil {
		return nil, fmt.Errorf("parsing sheet XML %s: %w", sheetPath, err)
	}
	return dets, nil
}

// parseSheet scans one sheet document for interpretation elements.
//
// The scan is token-driven rather than schema-driven: Audiveris documents
// are large and their structure varies between versions, so the parser
// reacts to any <head>, <key-alter>, or <inter> element wherever it
// appears and ignores the rest of the document.
func parseSheet(r io.Reader) ([]Detection, error) {
	dec := xml.NewDecoder(r)

	var detections []Detection
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed sheet XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "head", "key-alter", "inter", "alter":
			var el interElement
			if err := dec.DecodeElement(&el, &start); err != nil {
				return nil, fmt.Errorf("decoding %s element: %w", start.Name.Local, err)
			}
			if el.Bounds == nil {
				continue
			}
			shape := el.Shape
			if shape == "" && start.Name.Local == "head" {
				shape = "NOTEHEAD"
			}
			symType, ok := ClassifySymbol(shape)
			if !ok {
				continue
			}
			detections = append(detections, Detection{
				Type:  symType,
				Shape: shape,
				Bounds: Bounds{
					X:      el.Bounds.X,
					Y:      el.Bounds.Y,
					Width:  el.Bounds.W,
					Height: el.Bounds.H,
				},
			})
		}
	}
	return detections, nil
}
