package codes

import (
	"github.com/wordvote/wordvote/internal/dependencies/random"
)

const (
	// CodeLength is the length of generated session codes
	CodeLength = 6
	// CodeAlphabet is the characters used in session codes.
	// Visually confusable characters (O/0, I/1) are excluded.
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// TokenLength is the length of generated bearer tokens
	TokenLength = 24
	// TokenAlphabet is the characters used in bearer tokens
	TokenAlphabet = CodeAlphabet + "abcdefghjklmnpqrstuvwxyz23456789"
)

// Generator produces session codes and bearer tokens. Codes are
// human-typeable and carry no uniqueness guarantee on their own; the
// session service claims them against storage. Tokens must come from a
// cryptographically strong source in production.
type Generator struct {
	random random.Random
}

// New creates a new Generator
func New(random random.Random) *Generator {
	return &Generator{random: random}
}

// Code generates a 6-character session code
func (g *Generator) Code() string {
	return g.random.String(CodeLength, CodeAlphabet)
}

// Token generates a 24-character opaque bearer token
func (g *Generator) Token() string {
	return g.random.String(TokenLength, TokenAlphabet)
}
