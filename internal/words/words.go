package words

import "strings"

// MaxWordLength bounds the normalized form of a submitted word
const MaxWordLength = 24

// DefaultBlocklist is the blocklist applied when none is configured
var DefaultBlocklist = []string{"hate", "slur"}

// Normalize canonicalizes raw submitted text into the tally key: it
// trims whitespace, lower-cases, strips every character outside
// [a-z0-9-'] and truncates to MaxWordLength. It returns "" when
// nothing survives. Normalize is pure and idempotent, so identical
// intents always collapse to the same key.
func Normalize(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '\'' {
			b.WriteRune(r)
		}
	}

	normalized := b.String()
	if len(normalized) > MaxWordLength {
		normalized = normalized[:MaxWordLength]
	}
	return normalized
}

// Blocklist is an immutable set of disallowed normalized words, built
// once at startup. Lookups are exact-match; entries are normalized at
// construction so matching is case-insensitive by construction.
type Blocklist struct {
	entries map[string]struct{}
}

// NewBlocklist builds a blocklist from the given words
func NewBlocklist(entries []string) *Blocklist {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if n := Normalize(e); n != "" {
			set[n] = struct{}{}
		}
	}
	return &Blocklist{entries: set}
}

// Blocked reports whether the given normalized word is disallowed
func (b *Blocklist) Blocked(word string) bool {
	_, ok := b.entries[word]
	return ok
}

// Len returns the number of blocklist entries
func (b *Blocklist) Len() int {
	return len(b.entries)
}
