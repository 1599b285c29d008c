package game

import (
	"slices"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// IsPossible reports whether word can be spelled from the letters of root,
// each letter of root used at most once. A letter is a grapheme cluster
// compared in NFC form, so "é" typed as e + combining accent matches a
// precomposed "é" and never supplies a bare "e". Letters are consumed from
// a copy of root in the order they appear in word; the first letter with no
// remaining match fails the check.
func IsPossible(word, root string) bool {
	pool := letters(root)
	for _, l := range letters(word) {
		i := slices.Index(pool, l)
		if i < 0 {
			return false
		}
		pool = slices.Delete(pool, i, i+1)
	}
	return true
}

// letters splits s into NFC grapheme clusters.
func letters(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(norm.NFC.String(s))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// normalize lowercases with the session's casing rules, trims surrounding
// whitespace and line breaks, and composes to NFC.
func normalize(caser cases.Caser, raw string) string {
	return norm.NFC.String(strings.TrimSpace(caser.String(raw)))
}
