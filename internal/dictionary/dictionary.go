// Package dictionary answers whether a word is spelled correctly in a given
// language. Word lists are compiled into CHD minimal perfect hash tables
// keyed by SipHash fingerprints, so a lookup is two hashes and one compare.
package dictionary

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dchest/siphash"
	chd "github.com/opencoff/go-chd"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Checker is the dictionary oracle consulted by a game session.
type Checker interface {
	IsRealWord(word, language string) bool
}

// ErrEmpty is returned when a dictionary would contain no words.
var ErrEmpty = errors.New("dictionary: no words")

//go:embed words/en.txt
var embeddedEnglish string

// Fixed SipHash key. Fingerprints never leave the process so the key only
// needs to be stable for the lifetime of a Set.
const (
	sipK0 = 0x0706050403020100
	sipK1 = 0x0f0e0d0c0b0a0908
)

// chd load factor; 0.9 keeps construction fast for lists of this size.
const loadFactor = 0.9

// Set is an immutable set of words.
type Set struct {
	mph   *chd.Chd
	slots []uint64
	size  int
}

// Build compiles words into a Set using DefaultLanguage casing rules.
func Build(words []string) (*Set, error) {
	return BuildLanguage(DefaultLanguage, words)
}

// BuildLanguage compiles words into a Set. Words are lowercased with the
// casing rules of lang, trimmed and composed to NFC, matching how a game
// session normalizes submissions; blanks and duplicates are ignored.
func BuildLanguage(lang string, words []string) (*Set, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}
	caser := cases.Lower(tag)

	seen := make(map[uint64]struct{}, len(words))
	keys := make([]uint64, 0, len(words))
	for _, w := range words {
		w = norm.NFC.String(strings.TrimSpace(caser.String(w)))
		if w == "" {
			continue
		}
		k := fingerprint(w)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil, ErrEmpty
	}

	b, err := chd.New()
	if err != nil {
		return nil, fmt.Errorf("create chd builder: %w", err)
	}
	for _, k := range keys {
		if err := b.Add(k); err != nil {
			return nil, fmt.Errorf("add key: %w", err)
		}
	}
	mph, err := b.Freeze(loadFactor)
	if err != nil {
		return nil, fmt.Errorf("freeze chd: %w", err)
	}

	// Size the slot table from the largest index the hash actually hands out.
	var maxIdx uint64
	for _, k := range keys {
		if i := mph.Find(k); i > maxIdx {
			maxIdx = i
		}
	}
	slots := make([]uint64, maxIdx+1)
	for _, k := range keys {
		slots[mph.Find(k)] = k
	}

	return &Set{mph: mph, slots: slots, size: len(keys)}, nil
}

// Contains reports whether word is in the set. The word must already be
// normalized the way the set was built (lowercase, trimmed, NFC).
func (s *Set) Contains(word string) bool {
	if s == nil || word == "" {
		return false
	}
	k := fingerprint(word)
	i := s.mph.Find(k)
	if i >= uint64(len(s.slots)) {
		return false
	}
	return s.slots[i] == k
}

// Len returns the number of distinct words in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.size
}

func fingerprint(word string) uint64 {
	return siphash.Hash(sipK0, sipK1, []byte(word))
}

// ReadWords reads a newline-delimited word list.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if w := strings.TrimSpace(sc.Text()); w != "" {
			words = append(words, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// LoadFile builds a Set from a word list file, lowercasing with the casing
// rules of lang.
func LoadFile(path, lang string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer func() { _ = f.Close() }()

	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	set, err := BuildLanguage(lang, words)
	if err != nil {
		return nil, fmt.Errorf("build dictionary %s: %w", path, err)
	}
	return set, nil
}

// Embedded builds the bundled English dictionary.
func Embedded() (*Set, error) {
	words, err := ReadWords(strings.NewReader(embeddedEnglish))
	if err != nil {
		return nil, err
	}
	return Build(words)
}
