package extract

import "regexp"

// Contact field patterns, each run as an independent pass over the raw text.
// First match wins; anything beyond it is ignored.
var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
)

func extractContact(text string) Contact {
	var contact Contact
	if m := emailPattern.FindString(text); m != "" {
		contact.Email = m
	}
	if m := phonePattern.FindString(text); m != "" {
		contact.Phone = m
	}
	if m := linkedinPattern.FindString(text); m != "" {
		contact.LinkedIn = m
	}
	return contact
}
