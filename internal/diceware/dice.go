package diceware

import "strings"

const (
	faces     = 6
	keyLength = 5
)

// Die produces fair six-sided rolls from a Sampler.
type Die struct {
	sampler *Sampler
}

// NewDie returns a Die rolled by sampler.
func NewDie(sampler *Sampler) Die {
	return Die{sampler: sampler}
}

// Roll returns a face in [1, 6].
func (d Die) Roll() (int, error) {
	n, err := d.sampler.IntIn(0, faces-1)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

// RollKey returns five concatenated rolls as a wordlist key, "11111"
// through "66666".
func (d Die) RollKey() (string, error) {
	var sb strings.Builder
	for range keyLength {
		face, err := d.Roll()
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + face))
	}
	return sb.String(), nil
}
