package metrics

import (
	"regexp"
	"strings"
	"unicode"
)

// stockPhrases are complete comments that carry no engagement signal
// on their own. Lookup is against the trimmed lowercased text.
var stockPhrases = map[string]struct{}{
	"nice":      {},
	"nice pic":  {},
	"nice post": {},
	"cool":      {},
	"wow":       {},
	"amazing":   {},
	"great":     {},
	"love this": {},
	"so nice":   {},
	"beautiful": {},
	"awesome":   {},
	"great pic": {},
	"lovely":    {},
	"perfect":   {},
}

var nonWordRe = regexp.MustCompile(`^[\W_]+$`)

// IsGenericComment reports whether a comment text is low-effort filler:
// empty or near-empty, a stock phrase, mostly symbols, or too short to
// carry meaning.
func IsGenericComment(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	runes := []rune(t)
	if len(runes) <= 2 {
		return true
	}
	if _, ok := stockPhrases[t]; ok {
		return true
	}
	letters := 0
	for _, r := range runes {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters <= 3 && len(runes) <= 12 {
		return true
	}
	return nonWordRe.MatchString(t)
}
