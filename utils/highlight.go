package utils

import "regexp"

// HighlightMatches wraps every occurrence of keyword in text with a <mark>
// marker, case-insensitively. Regex metacharacters in the keyword are
// escaped so the search term is always matched literally.
func HighlightMatches(text, keyword string) string {
	if text == "" || keyword == "" {
		return text
	}

	re, err := regexp.Compile(`(?i)(` + regexp.QuoteMeta(keyword) + `)`)
	if err != nil {
		return text
	}
	return re.ReplaceAllString(text, "<mark>$1</mark>")
}
