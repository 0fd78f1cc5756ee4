package keywords

import (
	"strings"

	"resume-optimizer/internal/shared/telemetry"
)

// Extractor ranks the salient terms of a text by combining statistical
// tf-idf importance with named-entity mentions.
type Extractor struct {
	recognizer Recognizer
}

// NewExtractor constructs an Extractor around an injected Recognizer. A nil
// recognizer disables the entity branch.
func NewExtractor(recognizer Recognizer) *Extractor {
	return &Extractor{recognizer: recognizer}
}

// Extract returns up to topN unique lowercase keywords, statistical results
// first (weight-descending), then entities the statistics missed, in
// recognizer order. Empty or whitespace-only text yields an empty slice.
// Either branch failing degrades to an empty contribution from that branch.
func (e *Extractor) Extract(text string, topN int) []string {
	if strings.TrimSpace(text) == "" || topN <= 0 {
		return []string{}
	}

	statistical, err := tfidfKeywords(text, topN)
	if err != nil {
		telemetry.Warn("keywords.tfidf_degraded", map[string]any{"error": err.Error()})
		statistical = nil
	}

	var entityTerms []string
	if e.recognizer != nil {
		entities, err := e.recognizer.Entities(text)
		if err != nil {
			telemetry.Warn("keywords.ner_degraded", map[string]any{"error": err.Error()})
		} else {
			entityTerms = entityKeywords(entities)
		}
	}

	combined := make([]string, 0, topN)
	seen := map[string]struct{}{}

	add := func(term string) bool {
		if len(combined) >= topN {
			return false
		}
		if _, dup := seen[term]; dup {
			return true
		}
		seen[term] = struct{}{}
		combined = append(combined, term)
		return true
	}

	for _, st := range statistical {
		if !add(st.term) {
			break
		}
	}
	for _, term := range entityTerms {
		if !add(term) {
			break
		}
	}

	return combined
}
