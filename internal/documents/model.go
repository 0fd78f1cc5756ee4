package documents

import (
	"time"

	"resume-optimizer/internal/extract"
)

// Document is one uploaded resume, stored bytes plus the parse result.
// Parsing happens once at upload; the parsed fields are immutable afterwards.
type Document struct {
	ID         string
	UserID     string
	FileName   string
	FileType   string
	SizeBytes  int64
	FileHash   string
	StorageKey string
	RawText    string
	Contact    extract.Contact
	Sections   map[string][]string
	CreatedAt  time.Time
}

// Parsed reassembles the extractor's view of the document.
func (d Document) Parsed() extract.ParsedDocument {
	sections := d.Sections
	if sections == nil {
		sections = map[string][]string{}
	}
	for _, key := range extract.SectionKeys {
		if sections[key] == nil {
			sections[key] = []string{}
		}
	}
	return extract.ParsedDocument{
		RawText:  d.RawText,
		Contact:  d.Contact,
		Sections: sections,
	}
}
