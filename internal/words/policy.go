package words

import (
	"fmt"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
)

// Policy decides what happens when no root word list is available.
type Policy string

const (
	// PolicyHalt surfaces ErrStartupResourceMissing to the caller.
	PolicyHalt Policy = "halt"
	// PolicyFallback starts the session with a fixed fallback word instead.
	PolicyFallback Policy = "fallback"
)

// ParsePolicy validates a policy name from config.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyHalt, PolicyFallback:
		return Policy(s), nil
	case "":
		return PolicyHalt, nil
	default:
		return "", fmt.Errorf("unknown missing word list policy %q (want %q or %q)", s, PolicyHalt, PolicyFallback)
	}
}

// Picker draws root words for new sessions. It is safe for concurrent use.
type Picker struct {
	mu       sync.Mutex
	source   *Source
	loadErr  error
	policy   Policy
	fallback string
	rng      *rand.Rand
	logger   *log.Logger
}

// NewPicker builds a Picker. loadErr is the error, if any, from loading src;
// it is kept so that every draw reports the original cause.
func NewPicker(src *Source, loadErr error, policy Policy, fallback string, rng *rand.Rand, logger *log.Logger) *Picker {
	if fallback == "" {
		fallback = DefaultFallback
	}
	return &Picker{
		source:   src,
		loadErr:  loadErr,
		policy:   policy,
		fallback: fallback,
		rng:      rng,
		logger:   logger.WithPrefix("words"),
	}
}

// PickRootWord returns the root word for a new session.
func (p *Picker) PickRootWord() (string, error) {
	err := p.loadErr
	if err == nil {
		var w string
		p.mu.Lock()
		w, err = p.source.Pick(p.rng)
		p.mu.Unlock()
		if err == nil {
			return w, nil
		}
	}

	if p.policy == PolicyFallback {
		p.logger.Warn("Using fallback root word", "word", p.fallback, "error", err)
		return p.fallback, nil
	}
	return "", err
}
