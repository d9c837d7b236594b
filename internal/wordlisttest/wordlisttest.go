// Package wordlisttest provides canned wordlists for tests.
package wordlisttest

import (
	"testing"

	"go.akshayshah.org/attest"

	"github.com/dicepass/dicepass/internal/wordlist"
)

// Complete returns a full 7776-entry list covering every five-roll key. The
// words are pure ASCII letters, so any other character in a generated
// passphrase must have come from a symbol substitution.
func Complete(tb testing.TB) *wordlist.List {
	tb.Helper()
	const (
		faces   = "123456"
		letters = "abcdef"
	)
	words := make(map[string]string, 6*6*6*6*6)
	for i := range 6 * 6 * 6 * 6 * 6 {
		var key, word [5]byte
		n := i
		for pos := 4; pos >= 0; pos-- {
			key[pos] = faces[n%6]
			word[pos] = letters[n%6]
			n /= 6
		}
		words[string(key[:])] = string(word[:])
	}
	list, err := wordlist.FromMap(words)
	attest.Ok(tb, err)
	return list
}
