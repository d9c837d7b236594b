package diceware

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidRange reports a sampling range the byte source cannot satisfy.
var ErrInvalidRange = errors.New("range outside what a byte source can produce")

// Sampler derives uniformly distributed integers from a cryptographically
// secure byte source.
type Sampler struct {
	src io.Reader
}

// NewSampler returns a Sampler backed by the operating system's secure
// source.
func NewSampler() *Sampler {
	return &Sampler{src: rand.Reader}
}

// NewSamplerSource returns a Sampler drawing bytes from src instead of the
// operating system. Tests script draws this way; hardware sources plug in
// here too.
func NewSamplerSource(src io.Reader) *Sampler {
	return &Sampler{src: src}
}

// IntIn returns a uniformly distributed integer in the closed range
// [start, end]. Bytes that would wrap unevenly around the range size are
// rejected and redrawn, so no value in the range is likelier than another.
// A failed read from the source is fatal and surfaces as a wrapped error,
// never a retry.
func (s *Sampler) IntIn(start, end int) (int, error) {
	if start < 0 || end > 255 || start > end {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, start, end)
	}
	size := end - start + 1
	limit := 256 - 256%size
	var b [1]byte
	for {
		if _, err := io.ReadFull(s.src, b[:]); err != nil {
			return 0, fmt.Errorf("read secure byte: %w", err)
		}
		if int(b[0]) < limit {
			return start + int(b[0])%size, nil
		}
	}
}
