package extract

// Section keys produced by the section scanner. Every key is present in
// ParsedDocument.Sections even when no heading matched.
const (
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionSkills     = "skills"
)

// SectionKeys lists the fixed section key set in scan order.
var SectionKeys = []string{SectionExperience, SectionEducation, SectionSkills}

// Contact holds contact fields recovered from the raw text. Each field is the
// first match of its pass, or empty when nothing matched.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// ParsedDocument is the structured result of parsing one uploaded file. It is
// built once per file and not mutated afterwards.
type ParsedDocument struct {
	RawText  string              `json:"rawText"`
	Contact  Contact             `json:"contact"`
	Sections map[string][]string `json:"sections"`
}

func emptySections() map[string][]string {
	sections := make(map[string][]string, len(SectionKeys))
	for _, key := range SectionKeys {
		sections[key] = []string{}
	}
	return sections
}
