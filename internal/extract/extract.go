package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Declared file type hints accepted by Parse.
const (
	TypePDF  = "pdf"
	TypeDOCX = "docx"
)

// Threshold below which the primary PDF pass is considered to have failed on a
// layout-heavy document and the row-based fallback runs instead.
const pdfFallbackMinChars = 100

// ExtractionError reports an unsupported file type or unreadable content.
// No partial document is produced alongside it.
type ExtractionError struct {
	FileType string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.FileType, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func extractionErr(fileType string, err error) error {
	return &ExtractionError{FileType: fileType, Err: err}
}

// Parse converts raw file bytes into a ParsedDocument: plain text, contact
// fields, and the section map. declaredType must be "pdf" or "docx".
func Parse(data []byte, declaredType string) (ParsedDocument, error) {
	var (
		rawText string
		err     error
	)
	switch strings.ToLower(strings.TrimSpace(declaredType)) {
	case TypePDF:
		rawText, err = extractPDF(data)
	case TypeDOCX:
		rawText, err = extractDOCX(data)
	default:
		return ParsedDocument{}, extractionErr(declaredType, fmt.Errorf("unsupported file type: %q", declaredType))
	}
	if err != nil {
		return ParsedDocument{}, err
	}

	return ParsedDocument{
		RawText:  rawText,
		Contact:  extractContact(rawText),
		Sections: identifySections(rawText),
	}, nil
}

// extractPDF reads the document with GetPlainText. When that yields almost no
// text (scanned or column-heavy layouts confuse the content-stream walk), it
// re-reads the document row by row.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", extractionErr(TypePDF, err)
	}

	text, primaryErr := pdfPlainText(reader)
	if primaryErr == nil && len(strings.TrimSpace(text)) >= pdfFallbackMinChars {
		return strings.TrimSpace(text), nil
	}

	fallback, fallbackErr := pdfTextByRows(reader)
	return choosePDFText(text, primaryErr, fallback, fallbackErr)
}

// choosePDFText picks between the two extraction passes once the primary has
// come up short: a successful fallback wins outright, a failed fallback keeps
// whatever the primary produced, and two failures surface the primary error.
func choosePDFText(primary string, primaryErr error, fallback string, fallbackErr error) (string, error) {
	if fallbackErr == nil {
		return strings.TrimSpace(fallback), nil
	}
	if primaryErr != nil {
		return "", extractionErr(TypePDF, primaryErr)
	}
	return strings.TrimSpace(primary), nil
}

func pdfPlainText(reader *pdf.Reader) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf text walk: %v", r)
		}
	}()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func pdfTextByRows(reader *pdf.Reader) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf row walk: %v", r)
		}
	}()

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, rowErr := page.GetTextByRow()
		if rowErr != nil {
			return "", rowErr
		}
		for _, row := range rows {
			for j, word := range row.Content {
				if j > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(word.S)
			}
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}

// extractDOCX pulls text out of word/document.xml, covering both body
// paragraphs and table cells.
func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", extractionErr(TypeDOCX, errors.New("empty docx data"))
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", extractionErr(TypeDOCX, err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", extractionErr(TypeDOCX, errors.New("word/document.xml not found"))
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", extractionErr(TypeDOCX, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", extractionErr(TypeDOCX, err)
	}

	text, err := flattenDocumentXML(raw)
	if err != nil {
		return "", extractionErr(TypeDOCX, err)
	}
	return text, nil
}

// flattenDocumentXML walks WordprocessingML and emits plain text: paragraphs
// end lines, table cells within a row are space-separated, rows end lines.
// Only character data inside <w:t> runs is text; whatever whitespace an XML
// serializer put between elements is formatting, not content.
func flattenDocumentXML(raw []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var buf strings.Builder
	tableDepth := 0
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "t":
				inText = true
			}
		case xml.CharData:
			if inText {
				buf.WriteString(string(t))
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "tbl":
				if tableDepth > 0 {
					tableDepth--
				}
			case "tc":
				buf.WriteString(" ")
			case "tr":
				trimTrailingSpaces(&buf)
				buf.WriteString("\n")
			case "p", "br":
				// Cell paragraphs stay on the cell's row.
				if tableDepth == 0 && buf.Len() > 0 {
					buf.WriteString("\n")
				}
			case "tab":
				buf.WriteString("\t")
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func trimTrailingSpaces(buf *strings.Builder) {
	s := strings.TrimRight(buf.String(), " ")
	buf.Reset()
	buf.WriteString(s)
}
