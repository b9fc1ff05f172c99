package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)
var lineBreakRegex = regexp.MustCompile(`[\r\n]+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// CollapseSpaces squashes all runs of whitespace (including newlines)
// into single spaces, the way rendered text reads on screen.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Lines splits a text blob on line breaks, trims every line and
// drops the empty ones.
func Lines(s string) []string {
	var out []string
	for _, ln := range lineBreakRegex.Split(s, -1) {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}

// TitleFromSlug turns a url slug like "tom-clancys-rainbow-six-siege"
// into "Tom Clancys Rainbow Six Siege".
func TitleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Truncate cuts a string down to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
