// Package words supplies root words for new game sessions.
//
// A Source is a list of candidate root words read from a newline-delimited
// resource: the bundled start.txt by default, or a file named in the config.
// Lines are lowercased and trimmed; blank lines are dropped so a trailing
// newline never produces an empty root word.
package words

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	rand "math/rand/v2"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFallback is the root word used by PolicyFallback.
const DefaultFallback = "grapefruit"

// ErrStartupResourceMissing means no root word list could be loaded, so a
// session cannot start.
var ErrStartupResourceMissing = errors.New("root word list unavailable")

//go:embed start.txt
var embeddedStart string

// Source is an immutable list of candidate root words.
type Source struct {
	name  string
	words []string
}

// Embedded returns the bundled start.txt word list.
func Embedded() *Source {
	return &Source{name: "start.txt", words: splitLines(embeddedStart)}
}

// Load reads name from fsys.
func Load(fsys fs.FS, name string) (*Source, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStartupResourceMissing, name, err)
	}
	return fromContent(name, string(data))
}

// LoadFile reads a word list from disk.
func LoadFile(path string) (*Source, error) {
	return Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

func fromContent(name, content string) (*Source, error) {
	words := splitLines(content)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrStartupResourceMissing, name)
	}
	return &Source{name: name, words: words}, nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if w := strings.ToLower(strings.TrimSpace(line)); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Name identifies where the list came from.
func (s *Source) Name() string { return s.name }

// Len returns the number of candidate words.
func (s *Source) Len() int { return len(s.words) }

// Pick returns a uniformly random candidate.
func (s *Source) Pick(rng *rand.Rand) (string, error) {
	if s == nil || len(s.words) == 0 {
		return "", ErrStartupResourceMissing
	}
	return s.words[rng.IntN(len(s.words))], nil
}
