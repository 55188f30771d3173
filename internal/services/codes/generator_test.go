package codes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wordvote/wordvote/internal/dependencies/mocks"
	"github.com/wordvote/wordvote/internal/dependencies/random"
)

func TestCodeUsesCodeAlphabet(t *testing.T) {
	g := New(random.New())

	for i := 0; i < 100; i++ {
		code := g.Code()
		assert.Len(t, code, CodeLength)
		for _, c := range code {
			assert.Contains(t, CodeAlphabet, string(c))
		}
	}
}

func TestCodeAlphabetExcludesConfusableCharacters(t *testing.T) {
	for _, c := range []string{"O", "0", "I", "1"} {
		assert.NotContains(t, CodeAlphabet, c)
	}
}

func TestTokenUsesTokenAlphabet(t *testing.T) {
	g := New(random.New())

	for i := 0; i < 100; i++ {
		token := g.Token()
		assert.Len(t, token, TokenLength)
		for _, c := range token {
			assert.Contains(t, TokenAlphabet, string(c))
		}
	}
}

func TestTokensAreNotTriviallyRepeated(t *testing.T) {
	g := New(random.New())

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := g.Token()
		assert.False(t, seen[token], "token repeated: %s", token)
		seen[token] = true
	}
}

func TestGeneratorDelegatesToRandom(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueString("ABC234", strings.Repeat("x", TokenLength))
	g := New(rnd)

	assert.Equal(t, "ABC234", g.Code())
	assert.Equal(t, strings.Repeat("x", TokenLength), g.Token())
}
