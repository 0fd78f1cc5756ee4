package extract

import (
	"regexp"
	"strings"
)

// headingSet binds a section key to the patterns that mark its heading lines.
// Sets are tested in order, patterns within a set in order, against the
// lowercased trimmed line.
type headingSet struct {
	key      string
	patterns []*regexp.Regexp
}

var headingSets = []headingSet{
	{
		key: SectionExperience,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`work\s+experience`),
			regexp.MustCompile(`professional\s+experience`),
			regexp.MustCompile(`experience`),
			regexp.MustCompile(`employment\s+history`),
		},
	},
	{
		key: SectionEducation,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`education`),
			regexp.MustCompile(`academic`),
			regexp.MustCompile(`qualifications`),
		},
	},
	{
		key: SectionSkills,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`skills`),
			regexp.MustCompile(`technical\s+skills`),
			regexp.MustCompile(`core\s+competencies`),
		},
	},
}

// identifySections scans lines top to bottom. A heading match flushes the
// block accumulated so far into the previous section and opens a new block;
// repeated headings of the same section append separate blocks rather than
// merging. Lines before the first heading are dropped.
func identifySections(text string) map[string][]string {
	sections := emptySections()

	currentKey := ""
	var block []string

	flush := func() {
		if currentKey != "" && len(block) > 0 {
			sections[currentKey] = append(sections[currentKey], strings.Join(block, "\n"))
		}
		block = nil
	}

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))

		if key, ok := matchHeading(lower); ok {
			flush()
			currentKey = key
			continue
		}

		if currentKey != "" && strings.TrimSpace(line) != "" {
			block = append(block, strings.TrimSpace(line))
		}
	}
	flush()

	return sections
}

func matchHeading(lower string) (string, bool) {
	if lower == "" {
		return "", false
	}
	for _, set := range headingSets {
		for _, pattern := range set.patterns {
			if pattern.MatchString(lower) {
				return set.key, true
			}
		}
	}
	return "", false
}
