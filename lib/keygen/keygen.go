package keygen

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	// Keyspace is the alphabet random keys are drawn from (26 upper, 26 lower, 10 digits)
	Keyspace = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultPrefix is the fixed tag every generated key starts with
	DefaultPrefix = "rabel-code"

	vowels     = "aeiou"
	consonants = "bcdfghjklmnpqrstvwxyz"
)

// Kind names a key generation strategy
type Kind string

const (
	KindRandom   Kind = "random"
	KindPhonetic Kind = "phonetic"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IKeyGenerator creates candidate document keys.
// Implementations keep no state between calls, so two calls may return the same key.
// Detecting such collisions is the job of the caller.
type IKeyGenerator interface {
	// CreateKey returns the generator prefix followed by length generated characters.
	// A length <= 0 yields only the prefix.
	CreateKey(length int) string
}

// New returns the generator registered for kind
func New(kind Kind, prefix string) (IKeyGenerator, error) {
	switch kind {
	case KindRandom, "":
		return NewRandomGenerator(prefix), nil
	case KindPhonetic:
		return NewPhoneticGenerator(prefix), nil
	default:
		return nil, fmt.Errorf("invalid key generator %q (expected one of: random, phonetic)", kind)
	}
}

// --------------------------------------------------------------------------
// Random Generator
// --------------------------------------------------------------------------

type randomGenerator struct {
	prefix string
	intN   func(n int) int
}

// NewRandomGenerator creates a generator drawing every character independently
// and uniformly from Keyspace.
//
// Thread-safety: the returned generator is safe for concurrent use.
func NewRandomGenerator(prefix string) IKeyGenerator {
	return &randomGenerator{prefix: prefix, intN: rand.IntN}
}

func (g *randomGenerator) CreateKey(length int) string {
	var sb strings.Builder
	sb.Grow(len(g.prefix) + max(length, 0))
	sb.WriteString(g.prefix)
	for i := 0; i < length; i++ {
		sb.WriteByte(Keyspace[g.intN(len(Keyspace))])
	}
	return sb.String()
}

// --------------------------------------------------------------------------
// Phonetic Generator
// --------------------------------------------------------------------------

type phoneticGenerator struct {
	prefix string
	intN   func(n int) int
}

// NewPhoneticGenerator creates a generator producing pronounceable keys
// by alternating consonants and vowels.
//
// Thread-safety: the returned generator is safe for concurrent use.
func NewPhoneticGenerator(prefix string) IKeyGenerator {
	return &phoneticGenerator{prefix: prefix, intN: rand.IntN}
}

func (g *phoneticGenerator) CreateKey(length int) string {
	var sb strings.Builder
	sb.Grow(len(g.prefix) + max(length, 0))
	sb.WriteString(g.prefix)

	// start with either class, then alternate
	useConsonant := g.intN(2) == 0
	for i := 0; i < length; i++ {
		if useConsonant {
			sb.WriteByte(consonants[g.intN(len(consonants))])
		} else {
			sb.WriteByte(vowels[g.intN(len(vowels))])
		}
		useConsonant = !useConsonant
	}
	return sb.String()
}
