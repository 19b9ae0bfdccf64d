package catalog

import "strings"

// NormalizeName reduces a free-form name to the shared lookup form:
// lowercase, every run of non-alphanumeric characters collapsed to a single
// space, leading and trailing spaces trimmed.
func NormalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := true // swallow leading separators
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// stopwords are tokens too common in part titles to carry any signal.
var stopwords = map[string]struct{}{
	"a":    {},
	"an":   {},
	"and":  {},
	"for":  {},
	"of":   {},
	"or":   {},
	"the":  {},
	"with": {},
}

// Tokenize splits a normalized name into lookup tokens: the individual
// words plus every adjacent word pair. Stopwords and single characters are
// dropped from the unigrams but still participate in bigrams, so "front of
// axle" keeps "front of" as a token.
func Tokenize(s string) []string {
	words := strings.Fields(NormalizeName(s))
	if len(words) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(words)*2)
	seen := make(map[string]struct{}, len(words)*2)

	add := func(tok string) {
		if _, dup := seen[tok]; dup {
			return
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	for i, w := range words {
		if _, stop := stopwords[w]; !stop && len(w) > 1 {
			add(w)
		}
		if i+1 < len(words) {
			add(w + " " + words[i+1])
		}
	}

	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
