package keywords

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
)

// Entity is one typed span found by a Recognizer.
type Entity struct {
	Text  string
	Label string
}

// Recognizer finds named entities in text. Implementations must be read-only
// after construction and safe for concurrent use; the production recognizer
// is built once at startup and shared across requests.
type Recognizer interface {
	Entities(text string) ([]Entity, error)
}

// Entity classes that contribute keywords: organizations, products,
// geo-political entities, people, and nationality/group mentions.
var relevantEntityLabels = map[string]struct{}{
	"ORG":     {},
	"PRODUCT": {},
	"GPE":     {},
	"PERSON":  {},
	"NORP":    {},
}

// ProseRecognizer backs Recognizer with the prose NLP model.
type ProseRecognizer struct{}

// NewProseRecognizer loads the prose model and verifies it with a throwaway
// document, so a broken model surfaces at startup instead of per request.
func NewProseRecognizer() (*ProseRecognizer, error) {
	if _, err := prose.NewDocument("startup probe"); err != nil {
		return nil, fmt.Errorf("load nlp model: %w", err)
	}
	return &ProseRecognizer{}, nil
}

// Entities runs the model over text. The model itself is never mutated here.
func (r *ProseRecognizer) Entities(text string) ([]Entity, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}
	ents := doc.Entities()
	out := make([]Entity, 0, len(ents))
	for _, ent := range ents {
		out = append(out, Entity{Text: ent.Text, Label: ent.Label})
	}
	return out, nil
}

// entityKeywords filters recognizer output down to relevant classes,
// lowercases, drops single-character results, and dedupes preserving the
// recognizer's order.
func entityKeywords(entities []Entity) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, ent := range entities {
		if _, ok := relevantEntityLabels[ent.Label]; !ok {
			continue
		}
		keyword := strings.ToLower(strings.TrimSpace(ent.Text))
		if keyword == "" || utf8.RuneCountInString(keyword) <= 1 {
			continue
		}
		if _, dup := seen[keyword]; dup {
			continue
		}
		seen[keyword] = struct{}{}
		out = append(out, keyword)
	}
	return out
}
