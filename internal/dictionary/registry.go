package dictionary

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when a caller does not name one.
const DefaultLanguage = "en"

// Registry maps languages to word sets and implements Checker. Languages are
// matched on their base subtag, so "en-GB" and "en-US" both resolve to "en".
type Registry struct {
	mu   sync.RWMutex
	sets map[string]*Set
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[string]*Set)}
}

// Register installs set as the dictionary for lang, replacing any previous one.
func (r *Registry) Register(lang string, set *Set) error {
	if set == nil {
		return fmt.Errorf("register %q: nil set", lang)
	}
	base, err := BaseLanguage(lang)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[base] = set
	return nil
}

// IsRealWord reports whether word is in the dictionary for language.
// Unknown or unparsable languages recognise nothing.
func (r *Registry) IsRealWord(word, lang string) bool {
	base, err := BaseLanguage(lang)
	if err != nil {
		return false
	}

	r.mu.RLock()
	set := r.sets[base]
	r.mu.RUnlock()

	return set.Contains(word)
}

// BaseLanguage canonicalises a BCP 47 tag to its base language, defaulting
// an empty string to DefaultLanguage.
func BaseLanguage(lang string) (string, error) {
	if lang == "" {
		lang = DefaultLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", lang, err)
	}
	base, _ := tag.Base()
	return base.String(), nil
}
