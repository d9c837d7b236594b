package diceware

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"go.akshayshah.org/attest"
	"pgregory.net/rapid"
)

func TestIntInBounds(t *testing.T) {
	s := NewSampler()
	for _, r := range [][2]int{{0, 5}, {0, 255}, {17, 42}, {200, 201}, {7, 7}} {
		lo, hi := 256, -1
		for range 10_000 {
			n, err := s.IntIn(r[0], r[1])
			attest.Ok(t, err)
			lo = min(lo, n)
			hi = max(hi, n)
		}
		attest.True(t, lo >= r[0])
		attest.True(t, hi <= r[1])
	}
}

func TestIntInRapid(t *testing.T) {
	s := NewSampler()
	rapid.Check(t, func(rt *rapid.T) {
		start := rapid.IntRange(0, 255).Draw(rt, "start")
		end := rapid.IntRange(start, 255).Draw(rt, "end")
		n, err := s.IntIn(start, end)
		if err != nil {
			rt.Fatalf("sample [%d, %d]: %v", start, end, err)
		}
		if n < start || n > end {
			rt.Fatalf("sample [%d, %d] = %d", start, end, n)
		}
	})
}

func TestIntInInvalidRange(t *testing.T) {
	s := NewSampler()
	for _, r := range [][2]int{{-1, 5}, {0, 256}, {9, 3}, {-4, -2}, {300, 400}} {
		_, err := s.IntIn(r[0], r[1])
		attest.ErrorIs(t, err, ErrInvalidRange)
	}
}

func TestIntInRejectsBiasedBytes(t *testing.T) {
	// A range of size 6 accepts bytes below 252, so 0xFF and 0xFE must
	// both be redrawn before 0x05 lands.
	src := bytes.NewReader([]byte{0xFF, 0xFE, 0x05})
	s := NewSamplerSource(src)
	n, err := s.IntIn(0, 5)
	attest.Ok(t, err)
	attest.Equal(t, n, 5)
	attest.Equal(t, src.Len(), 0)
}

func TestIntInSingleValueRange(t *testing.T) {
	s := NewSampler()
	n, err := s.IntIn(42, 42)
	attest.Ok(t, err)
	attest.Equal(t, n, 42)
}

func TestIntInSourceFailure(t *testing.T) {
	s := NewSamplerSource(strings.NewReader(""))
	_, err := s.IntIn(0, 5)
	attest.Error(t, err)
	attest.True(t, errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF))
}
