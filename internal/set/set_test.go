package set

import (
	"slices"
	"testing"

	"go.akshayshah.org/attest"
)

func TestImmutability(t *testing.T) {
	base := New("alpha", "bravo")

	bigger := base.With("charlie")
	smaller := base.Without("bravo")

	// Derived sets don't alias the original.
	attest.Equal(t, base.Len(), 2)
	attest.Equal(t, bigger.Len(), 3)
	attest.Equal(t, smaller.Len(), 1)
	attest.True(t, base.Contains("bravo"))
	attest.True(t, bigger.Contains("charlie"))
	attest.False(t, smaller.Contains("bravo"))
}

func TestItemsSorted(t *testing.T) {
	s := New("delta", "alpha", "charlie", "bravo", "alpha")
	items := s.Items()
	attest.True(t, slices.IsSorted(items))
	attest.Equal(t, len(items), 4)
}

func TestCollect(t *testing.T) {
	s := Collect(slices.Values([]string{"one", "two", "two"}))
	attest.Equal(t, s.Len(), 2)
	attest.True(t, s.Contains("one"))
	attest.False(t, s.Contains("three"))
}

func TestString(t *testing.T) {
	attest.Equal(t, New("b", "a").String(), "{a, b}")
	attest.Equal(t, New().String(), "{}")
}
