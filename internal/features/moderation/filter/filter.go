// Package filter canonicalizes message text and screens it against a fixed
// list of obscenity roots. Matching is lexical only: the roots are short
// stems, so inflected forms are caught by substring containment.
package filter

import (
	"strings"
	"unicode"
)

var badRoots = []string{
	"хуй", "хуя", "хуе", "пизд", "пиздюк", "пизда", "ебл", "ебан", "ебат",
	"сука", "суки", "ебло", "мудак", "мудил", "гондон", "бляд", "блять", "уебок",
	"шлюх", "шлюп", "пидор", "пидр", "пидорок", "манда",
}

// replaceMap folds leetspeak digits and Latin confusables into the Cyrillic
// letters they imitate. Unmapped runes pass through unchanged.
var replaceMap = map[rune]rune{
	'0': 'о', '1': 'и', '3': 'е', '4': 'а', '5': 'с', '7': 'т', '@': 'а',
	'q': 'к', 'w': 'в', 'e': 'е', 'r': 'р', 't': 'т', 'y': 'у', 'u': 'у',
	'i': 'и', 'o': 'о', 'p': 'р', 'a': 'а', 's': 'с', 'd': 'д', 'f': 'ф',
	'g': 'г', 'h': 'х', 'j': 'й', 'k': 'к', 'l': 'л', 'z': 'з', 'x': 'х',
	'c': 'с', 'v': 'в', 'b': 'в', 'n': 'н', 'm': 'м',
}

// Normalize canonicalizes raw text for matching: lowercase, confusable
// substitution, removal of everything but Cyrillic/Latin letters and
// whitespace, whitespace collapsing, and collapsing of runs of three or
// more identical runes (defeats "сууукааа"-style letter stretching).
// The function is pure and idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if repl, ok := replaceMap[r]; ok {
			r = repl
		}
		if keepRune(r) {
			b.WriteRune(r)
		}
	}

	collapsed := strings.Join(strings.Fields(b.String()), " ")
	return collapseRuns(collapsed)
}

func keepRune(r rune) bool {
	return (r >= 'а' && r <= 'я') || r == 'ё' || (r >= 'a' && r <= 'z') || unicode.IsSpace(r)
}

// collapseRuns shortens any run of 3+ identical runes to a single rune.
// Double letters are left alone: they are common in legitimate words.
func collapseRuns(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if j-i >= 3 {
			b.WriteRune(runes[i])
		} else {
			for k := i; k < j; k++ {
				b.WriteRune(runes[k])
			}
		}
		i = j
	}
	return b.String()
}

// ContainsProfanity reports whether the text matches any configured root
// after normalization. Two passes: exact token match (clean usage of a
// root as a standalone word), then unanchored substring containment
// (roots buried in compounds or concatenations). The substring pass can
// flag innocent words containing a root; that false-positive risk is an
// accepted tradeoff of the stem list.
func ContainsProfanity(raw string) bool {
	norm := Normalize(raw)
	if norm == "" {
		return false
	}

	words := strings.Fields(norm)
	for _, root := range badRoots {
		for _, w := range words {
			if w == root {
				return true
			}
		}
	}
	for _, root := range badRoots {
		if strings.Contains(norm, root) {
			return true
		}
	}
	return false
}
