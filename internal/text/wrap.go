package text

import (
	"strings"
	"unicode"
)

// MeasureFunc returns the rendered width of s in points.
type MeasureFunc func(s string) float64

// SplitTokens splits text into alternating word and single-space tokens. Runs of
// whitespace collapse to one " " token; leading and trailing whitespace is kept as a
// token so adjacent inline runs still join with a space.
func SplitTokens(s string) []string {
	var tokens []string
	var cur []rune
	inSpace := false

	for _, r := range s {
		isSp := unicode.IsSpace(r)
		switch {
		case isSp && inSpace:
			continue
		case isSp:
			if len(cur) > 0 {
				tokens = append(tokens, string(cur))
				cur = cur[:0]
			}
			tokens = append(tokens, " ")
			inSpace = true
		default:
			cur = append(cur, r)
			inSpace = false
		}
	}
	if len(cur) > 0 {
		tokens = append(tokens, string(cur))
	}
	return tokens
}

// IsAllSpace reports whether s contains only whitespace.
func IsAllSpace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// NormalizeWhitespace collapses consecutive whitespace into a single space without
// trimming the ends.
func NormalizeWhitespace(s string) string {
	var b strings.Builder
	lastWasSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasSpace = true
			continue
		}
		b.WriteRune(r)
		lastWasSpace = false
	}
	return b.String()
}

// SplitTextToLines wraps text greedily so that no line is wider than maxWidth. Words
// wider than maxWidth are broken between characters.
func SplitTextToLines(text string, measure MeasureFunc, maxWidth float64) []string {
	text = strings.TrimSpace(NormalizeWhitespace(text))
	if text == "" {
		return nil
	}
	if maxWidth <= 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if measure(word) <= maxWidth {
			current = word
			continue
		}
		pieces := BreakWord(word, measure, maxWidth)
		lines = append(lines, pieces[:len(pieces)-1]...)
		current = pieces[len(pieces)-1]
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// BreakWord splits a single word into pieces that each fit maxWidth. A piece always
// holds at least one rune, so a rune wider than maxWidth still makes progress.
func BreakWord(word string, measure MeasureFunc, maxWidth float64) []string {
	var pieces []string
	var cur []rune
	for _, r := range word {
		next := append(cur, r)
		if len(cur) > 0 && measure(string(next)) > maxWidth {
			pieces = append(pieces, string(cur))
			cur = []rune{r}
			continue
		}
		cur = next
	}
	if len(cur) > 0 {
		pieces = append(pieces, string(cur))
	}
	return pieces
}
