package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>jane.doe@example.com | (555) 123-4567 | linkedin.com/in/janedoe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Experience</w:t></w:r></w:p>
    <w:p><w:r><w:t>Backend engineer at Initech</w:t></w:r></w:p>
    <w:p><w:r><w:t>Education</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>BSc Computer Science</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>2019</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

func TestParse_DocxParagraphsAndTables(t *testing.T) {
	doc, err := Parse(buildDocx(t, sampleDocumentXML), "docx")
	if err != nil {
		t.Fatalf("parse docx: %v", err)
	}

	if !strings.Contains(doc.RawText, "Backend engineer at Initech") {
		t.Errorf("paragraph text missing from raw text:\n%s", doc.RawText)
	}
	if !strings.Contains(doc.RawText, "BSc Computer Science 2019") {
		t.Errorf("table cell text missing from raw text:\n%s", doc.RawText)
	}
	// Indentation between elements in the source XML must not leak into the
	// extracted text.
	for _, run := range []string{"   ", "\n\n\n", " \n", "\t "} {
		if strings.Contains(doc.RawText, run) {
			t.Errorf("whitespace run %q leaked into raw text:\n%s", run, doc.RawText)
		}
	}
}

func TestParse_ContactRoundTrip(t *testing.T) {
	doc, err := Parse(buildDocx(t, sampleDocumentXML), "docx")
	if err != nil {
		t.Fatalf("parse docx: %v", err)
	}

	if doc.Contact.Email != "jane.doe@example.com" {
		t.Errorf("email = %q", doc.Contact.Email)
	}
	if doc.Contact.Phone != "(555) 123-4567" {
		t.Errorf("phone = %q", doc.Contact.Phone)
	}
	if doc.Contact.LinkedIn != "linkedin.com/in/janedoe" {
		t.Errorf("linkedin = %q", doc.Contact.LinkedIn)
	}
}

func TestParse_UnsupportedType(t *testing.T) {
	_, err := Parse([]byte("plain text"), "txt")
	if err == nil {
		t.Fatal("expected error for unsupported type")
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected *ExtractionError, got %T: %v", err, err)
	}
	if extErr.FileType != "txt" {
		t.Errorf("file type = %q", extErr.FileType)
	}
}

func TestParse_CorruptPDF(t *testing.T) {
	_, err := Parse([]byte("definitely not a pdf"), "pdf")
	if err == nil {
		t.Fatal("expected error for corrupt pdf bytes")
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected *ExtractionError, got %T: %v", err, err)
	}
}

func TestChoosePDFText(t *testing.T) {
	rowErr := errors.New("rows failed")
	primaryErr := errors.New("primary failed")

	// A successful row pass wins even when the primary produced more text.
	got, err := choosePDFText("long primary text body", nil, "rows", nil)
	if err != nil || got != "rows" {
		t.Errorf("got %q, %v; want rows output", got, err)
	}

	// A failed row pass keeps whatever the primary produced.
	got, err = choosePDFText("  primary  ", nil, "", rowErr)
	if err != nil || got != "primary" {
		t.Errorf("got %q, %v; want trimmed primary output", got, err)
	}

	// Both passes failing surfaces the primary error.
	if _, err = choosePDFText("", primaryErr, "", rowErr); !errors.Is(err, primaryErr) {
		t.Errorf("err = %v, want wrapped primary error", err)
	}

	// The row pass can rescue a primary failure.
	got, err = choosePDFText("", primaryErr, "rescued", nil)
	if err != nil || got != "rescued" {
		t.Errorf("got %q, %v; want rescued output", got, err)
	}
}

func TestParse_DocxWithoutDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = Parse(buf.Bytes(), "docx")
	if err == nil || !strings.Contains(err.Error(), "document.xml") {
		t.Fatalf("expected missing document.xml error, got %v", err)
	}
}

func TestIdentifySections_AbsentSectionsAreEmptyNotNil(t *testing.T) {
	sections := identifySections("no headings at all\njust prose")
	for _, key := range SectionKeys {
		blocks, ok := sections[key]
		if !ok {
			t.Fatalf("missing key %q", key)
		}
		if blocks == nil {
			t.Errorf("section %q is nil, want empty slice", key)
		}
		if len(blocks) != 0 {
			t.Errorf("section %q = %v, want empty", key, blocks)
		}
	}
}

func TestIdentifySections_SplitsAndRepeats(t *testing.T) {
	text := strings.Join([]string{
		"Jane Doe",
		"Experience",
		"Engineer at Initech",
		"Shipped the TPS pipeline",
		"Education",
		"BSc Computer Science",
		"Work Experience",
		"Intern at Globex",
	}, "\n")

	sections := identifySections(text)

	if got := sections[SectionExperience]; len(got) != 2 {
		t.Fatalf("experience blocks = %d, want 2 (%v)", len(got), got)
	}
	if want := "Engineer at Initech\nShipped the TPS pipeline"; sections[SectionExperience][0] != want {
		t.Errorf("first experience block = %q", sections[SectionExperience][0])
	}
	if sections[SectionExperience][1] != "Intern at Globex" {
		t.Errorf("second experience block = %q", sections[SectionExperience][1])
	}
	if got := sections[SectionEducation]; len(got) != 1 || got[0] != "BSc Computer Science" {
		t.Errorf("education = %v", got)
	}
}

func TestIdentifySections_BlankLinesIgnored(t *testing.T) {
	sections := identifySections("Skills\n\nGo\n\nPostgres\n")
	if got := sections[SectionSkills]; len(got) != 1 || got[0] != "Go\nPostgres" {
		t.Errorf("skills = %v", got)
	}
}

func TestExtractContact_FirstMatchWins(t *testing.T) {
	contact := extractContact("a@b.io then c@d.io\n555-123-4567 and 555-987-6543")
	if contact.Email != "a@b.io" {
		t.Errorf("email = %q", contact.Email)
	}
	if contact.Phone != "555-123-4567" {
		t.Errorf("phone = %q", contact.Phone)
	}
	if contact.LinkedIn != "" {
		t.Errorf("linkedin = %q, want empty", contact.LinkedIn)
	}
}
