package slug

import (
	"regexp"
	"strings"
)

const maxRunes = 64

// Letters of any script survive, so "Español B2" becomes "español-b2".
var separators = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Make turns a goal title into a file-name-safe slug.
func Make(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.Trim(separators.ReplaceAllString(s, "-"), "-")
	if runes := []rune(s); len(runes) > maxRunes {
		s = strings.TrimRight(string(runes[:maxRunes]), "-")
	}
	if s == "" {
		return "goal"
	}
	return s
}
