package diceware

import (
	"math"
	"testing"

	"go.akshayshah.org/attest"
)

func TestEntropy(t *testing.T) {
	attest.Equal(t, Entropy(0, 5, 0), 0)
	attest.Equal(t, Entropy(7776, 0, 0), 0)

	words := Entropy(7776, 5, 0)
	attest.True(t, math.Abs(words-5*math.Log2(7776)) < 1e-9)

	withSubs := Entropy(7776, 5, 2)
	attest.True(t, withSubs > words)
	attest.True(t, math.Abs(withSubs-(words+2*math.Log2(36))) < 1e-9)

	// Negative substitution counts add nothing.
	attest.Equal(t, Entropy(7776, 5, -1), words)
}
