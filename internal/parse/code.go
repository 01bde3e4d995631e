package parse

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Code normalises an equipment code so that rows from different sources join:
// surrounding whitespace is dropped, inner whitespace collapsed and letters
// upper-cased. Spreadsheet exports sometimes turn numeric codes into floats
// ("1001.0"); the trailing ".0" is removed.
func Code(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\ufeff")
	s = whitespaceRe.ReplaceAllString(s, " ")
	if strings.HasSuffix(s, ".0") && isDigits(s[:len(s)-2]) {
		s = s[:len(s)-2]
	}
	return strings.ToUpper(s)
}

// Text trims a free-text cell and treats the usual null markers as empty.
func Text(raw string) string {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "nan", "nat", "null", "none", "-":
		return ""
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
