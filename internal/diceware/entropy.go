package diceware

import "math"

// Entropy estimates the bits of entropy in a passphrase drawn from a list
// of listSize words. Each word contributes log2(listSize) bits and each
// substitution log2(36) bits for its symbol choice. The positions of
// substituted characters are ignored, keeping the estimate conservative.
func Entropy(listSize, words, substitutions int) float64 {
	if listSize <= 0 || words <= 0 {
		return 0
	}
	bits := float64(words) * math.Log2(float64(listSize))
	if substitutions > 0 {
		bits += float64(substitutions) * math.Log2(36)
	}
	return bits
}
