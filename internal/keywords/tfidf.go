package keywords

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// maxFeatures caps the vocabulary at the terms with the highest corpus
// frequency, matching the statistical model this ranking reproduces.
const maxFeatures = 100

// Tokens are lowercased runs of 2+ word characters.
var tokenPattern = regexp.MustCompile(`\w\w+`)

type scoredTerm struct {
	term  string
	score float64
}

// tfidfKeywords ranks unigrams and bigrams of text by summed tf-idf weight
// over a pseudo-corpus of the text's own sentences. The corpus is tiny by
// construction (5-20 sentences is typical), which is intentional: inverse
// document frequency here separates boilerplate lines from salient ones
// within a single document.
func tfidfKeywords(text string, topN int) ([]scoredTerm, error) {
	corpus := sentenceCorpus(text)
	if len(corpus) == 0 {
		return nil, errors.New("no sentences to vectorize")
	}

	docs := make([][]string, len(corpus))
	for i, sentence := range corpus {
		docs[i] = ngrams(tokenize(sentence))
	}

	vocab := buildVocabulary(docs)
	if len(vocab) == 0 {
		return nil, errors.New("empty vocabulary")
	}

	df := make(map[string]int, len(vocab))
	for _, doc := range docs {
		seen := map[string]struct{}{}
		for _, term := range doc {
			if _, kept := vocab[term]; !kept {
				continue
			}
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(vocab))
	for term := range vocab {
		idf[term] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	// Per document: tf*idf, l2-normalized, then summed across the corpus.
	summed := make(map[string]float64, len(vocab))
	for _, doc := range docs {
		tf := map[string]float64{}
		for _, term := range doc {
			if _, kept := vocab[term]; kept {
				tf[term]++
			}
		}
		var norm float64
		weights := make(map[string]float64, len(tf))
		for term, count := range tf {
			w := count * idf[term]
			weights[term] = w
			norm += w * w
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for term, w := range weights {
			summed[term] += w / norm
		}
	}

	ranked := make([]scoredTerm, 0, len(summed))
	for term, score := range summed {
		ranked = append(ranked, scoredTerm{term: term, score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].term < ranked[j].term
	})

	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked, nil
}

// sentenceCorpus splits on periods; documents with fewer than two sentences
// fall back to newline splitting.
func sentenceCorpus(text string) []string {
	split := func(sep string) []string {
		var out []string
		for _, part := range strings.Split(text, sep) {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}

	sentences := split(".")
	if len(sentences) < 2 {
		sentences = split("\n")
	}
	return sentences
}

func tokenize(sentence string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(sentence), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// ngrams yields the unigrams plus space-joined bigrams of a token sequence.
func ngrams(tokens []string) []string {
	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// buildVocabulary keeps at most maxFeatures terms, chosen by total corpus
// frequency with alphabetical tie-breaking.
func buildVocabulary(docs [][]string) map[string]struct{} {
	counts := map[string]int{}
	for _, doc := range docs {
		for _, term := range doc {
			counts[term]++
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	vocab := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		vocab[term] = struct{}{}
	}
	return vocab
}
