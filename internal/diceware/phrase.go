// Package diceware generates passphrases the diceware way: each word is
// selected from a wordlist by five cryptographically sampled dice rolls,
// and a bounded number of words may have one character swapped for a
// symbol from a fixed substitution grid.
package diceware

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dicepass/dicepass/internal/wordlist"
)

var (
	// ErrUnknownKey means a rolled key has no entry in the wordlist.
	ErrUnknownKey = errors.New("key not in wordlist")
	// ErrTooManySubstitutions means more substitutions were requested
	// than words.
	ErrTooManySubstitutions = errors.New("substitutions exceed word count")
)

// Config carries the collaborators a Generator needs.
type Config struct {
	// Wordlist maps five-roll keys to words. Required.
	Wordlist *wordlist.List
	// Separator joins the words of a passphrase. Empty means a single
	// space.
	Separator string
	// Source supplies random bytes. Nil means crypto/rand.Reader.
	Source io.Reader
}

// Generator assembles passphrases. It holds no state between calls, so a
// single Generator is safe for concurrent use as long as its byte source
// is (crypto/rand.Reader is).
type Generator struct {
	list    *wordlist.List
	sep     string
	sampler *Sampler
	die     Die
}

// New returns a Generator drawing from cfg.Wordlist.
func New(cfg Config) *Generator {
	if cfg.Separator == "" {
		cfg.Separator = " "
	}
	if cfg.Source == nil {
		cfg.Source = rand.Reader
	}
	sampler := NewSamplerSource(cfg.Source)
	return &Generator{
		list:    cfg.Wordlist,
		sep:     cfg.Separator,
		sampler: sampler,
		die:     NewDie(sampler),
	}
}

// Generate returns a separator-joined passphrase of words randomly
// selected wordlist entries, substitutions of which have one character
// swapped for a symbol from the grid. At most one character per word
// changes, so substitutions must not exceed words; that precondition is
// checked before any randomness is consumed.
func (g *Generator) Generate(words, substitutions int) (string, error) {
	if substitutions > words {
		return "", fmt.Errorf("%w: %d substitutions for %d words",
			ErrTooManySubstitutions, substitutions, words)
	}
	selected, err := g.selectWords(words)
	if err != nil {
		return "", err
	}
	lengths := make([]int, len(selected))
	for i, w := range selected {
		lengths[i] = len([]rune(w))
	}
	plan, err := g.PlanSubstitutions(substitutions, lengths)
	if err != nil {
		return "", err
	}
	selected, err = Apply(plan, selected)
	if err != nil {
		return "", err
	}
	return strings.Join(selected, g.sep), nil
}

// selectWords rolls a key per word and looks each one up. A key with no
// entry fails immediately; keys are never resampled.
func (g *Generator) selectWords(count int) ([]string, error) {
	selected := make([]string, 0, max(count, 0))
	for range count {
		key, err := g.die.RollKey()
		if err != nil {
			return nil, err
		}
		word, ok := g.list.Lookup(key)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		selected = append(selected, word)
	}
	return selected, nil
}

// A Change swaps the rune at Char for Symbol.
type Change struct {
	Char   int
	Symbol rune
}

// A Plan maps word indices to the change each picked word receives.
type Plan map[int]Change

// PlanSubstitutions picks count distinct word indices and a change for
// each. Indices are sampled without replacement, so the plan always holds
// exactly count entries. lengths gives the rune length of each word; a
// picked word must be non-empty, since a change needs a position to land
// on.
func (g *Generator) PlanSubstitutions(count int, lengths []int) (Plan, error) {
	plan := make(Plan, max(count, 0))
	if count <= 0 {
		return plan, nil
	}
	if count > len(lengths) {
		return nil, fmt.Errorf("%w: %d substitutions for %d words",
			ErrTooManySubstitutions, count, len(lengths))
	}
	indices := make([]int, len(lengths))
	for i := range indices {
		indices[i] = i
	}
	for pick := range count {
		// Partial Fisher-Yates: swap a random remaining index into
		// position pick.
		j, err := g.sampler.IntIn(pick, len(indices)-1)
		if err != nil {
			return nil, err
		}
		indices[pick], indices[j] = indices[j], indices[pick]
		word := indices[pick]
		char, err := g.sampler.IntIn(0, lengths[word]-1)
		if err != nil {
			return nil, fmt.Errorf("pick char in word %d: %w", word, err)
		}
		row, err := g.die.Roll()
		if err != nil {
			return nil, err
		}
		col, err := g.die.Roll()
		if err != nil {
			return nil, err
		}
		plan[word] = Change{Char: char, Symbol: Symbols[row-1][col-1]}
	}
	return plan, nil
}

// Apply returns a copy of words with plan's changes applied; the input
// slice is never modified. A plan entry that doesn't fit words errors
// instead of corrupting. Applying a plan to its own output is a no-op.
func Apply(plan Plan, words []string) ([]string, error) {
	out := slices.Clone(words)
	for i, change := range plan {
		if i < 0 || i >= len(out) {
			return nil, fmt.Errorf("plan targets word %d of %d", i, len(out))
		}
		runes := []rune(out[i])
		if change.Char < 0 || change.Char >= len(runes) {
			return nil, fmt.Errorf("plan targets char %d of %q", change.Char, out[i])
		}
		runes[change.Char] = change.Symbol
		out[i] = string(runes)
	}
	return out, nil
}
