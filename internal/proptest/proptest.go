// Package proptest provides utilities for property-based testing of
// passphrase servers.
package proptest

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/antithesishq/antithesis-sdk-go/assert"

	"github.com/dicepass/dicepass/internal/client"
	"github.com/dicepass/dicepass/internal/diceware"
	"github.com/dicepass/dicepass/internal/op"
	"github.com/dicepass/dicepass/internal/set"
	"github.com/dicepass/dicepass/internal/wordlist"
)

// MaxWords is the largest word count GenWorkloads requests. Servers under
// test must allow at least this many words per passphrase.
const MaxWords = 8

// A Request instructs a client to perform one operation. Words and
// Substitutions only matter for GENERATE and ENTROPY.
type Request struct {
	Op            op.Op
	Words         int
	Substitutions int
}

// A Result records what the server said. The field matching the request's
// operation is set; Err captures any failure.
type Result struct {
	Phrase string  // GENERATE
	Bits   float64 // ENTROPY
	Count  int     // WORDS
	Err    error
}

// GenWorkloads generates request streams for a variable number of clients.
func GenWorkloads(r *rand.Rand) [][]Request {
	numClients := r.IntN(3) + 2        // 2-4 clients
	reqsPerClient := r.IntN(128) + 128 // 128-255 requests per client
	// Bias the workload towards GENERATE, the operation with the most
	// moving parts.
	ops := []op.Op{
		op.Generate,
		op.Generate,
		op.Generate,
		op.Generate,
		op.Entropy,
		op.Words,
		op.Ping,
	}
	workloads := make([][]Request, numClients)
	for clientID := range workloads {
		workload := make([]Request, reqsPerClient)
		for i := range workload {
			words := r.IntN(MaxWords) + 1
			workload[i] = Request{
				Op:            ops[r.IntN(len(ops))],
				Words:         words,
				Substitutions: r.IntN(words + 1),
			}
		}
		workloads[clientID] = workload
	}
	return workloads
}

// RunWorkload runs a request stream on a client and collects the results.
func RunWorkload(logger *slog.Logger, client *client.Client, workload []Request) []Result {
	results := make([]Result, len(workload))
	for i, req := range workload {
		if i%100 == 0 {
			logger.Debug("running workload", "reqs_complete", i, "reqs_left", len(workload)-i)
		}
		switch req.Op {
		case op.Generate:
			results[i].Phrase, results[i].Err = client.Generate(req.Words, req.Substitutions)
		case op.Entropy:
			results[i].Bits, results[i].Err = client.Entropy(req.Words, req.Substitutions)
		case op.Words:
			results[i].Count, results[i].Err = client.Words()
		case op.Ping:
			results[i].Err = client.Ping()
		default:
			assert.Unreachable("Unexpected operation in workload run", map[string]any{"op": req.Op})
		}
	}
	return results
}

// Check verifies collected results against the generation contract: every
// request succeeds, each GENERATE response splits into exactly the requested
// number of words with at most the requested number of single-symbol
// substitutions, ENTROPY matches the estimate for the list, and WORDS
// reports the list's size. With a nil list, membership and size checks are
// skipped and only response shapes are verified.
func Check(list *wordlist.List, sep string, workloads [][]Request, results [][]Result) error {
	chk := newChecker(list, sep)
	for i, workload := range workloads {
		for j, req := range workload {
			res := results[i][j]
			if res.Err != nil {
				return fmt.Errorf("client %d request %d (%s): %w", i, j, req.Op, res.Err)
			}
			if err := chk.check(req, res); err != nil {
				return fmt.Errorf("client %d request %d (%s): %w", i, j, req.Op, err)
			}
		}
	}
	return nil
}

type checker struct {
	list     *wordlist.List
	sep      string
	words    *set.Set
	patterns *set.Set
}

func newChecker(list *wordlist.List, sep string) *checker {
	c := &checker{list: list, sep: sep}
	if list != nil {
		c.words = set.New(list.Words()...)
		c.patterns = substitutionPatterns(list)
	}
	return c
}

func (c *checker) check(req Request, res Result) error {
	switch req.Op {
	case op.Generate:
		return c.checkPhrase(req, res.Phrase)
	case op.Entropy:
		if c.list == nil {
			if res.Bits <= 0 {
				return fmt.Errorf("entropy %f, want positive", res.Bits)
			}
			return nil
		}
		want := diceware.Entropy(c.list.Len(), req.Words, req.Substitutions)
		if math.Abs(res.Bits-want) > 1e-6 {
			return fmt.Errorf("entropy %f, want %f", res.Bits, want)
		}
	case op.Words:
		if c.list == nil {
			if res.Count <= 0 {
				return fmt.Errorf("%d words, want positive", res.Count)
			}
			return nil
		}
		if res.Count != c.list.Len() {
			return fmt.Errorf("%d words, want %d", res.Count, c.list.Len())
		}
	case op.Ping:
	default:
		assert.Unreachable("Unexpected operation in workload check", map[string]any{"op": req.Op})
	}
	return nil
}

func (c *checker) checkPhrase(req Request, phrase string) error {
	tokens := strings.Split(phrase, c.sep)
	if len(tokens) != req.Words {
		return fmt.Errorf("%d words in %q, want %d", len(tokens), phrase, req.Words)
	}
	substituted := 0
	for _, tok := range tokens {
		if tok == "" {
			return fmt.Errorf("empty word in %q", phrase)
		}
		if c.words == nil {
			continue
		}
		switch {
		case c.words.Contains(tok):
		case c.matchesPattern(tok):
			substituted++
		default:
			return fmt.Errorf("word %q not derivable from the wordlist", tok)
		}
	}
	if substituted > req.Substitutions {
		return fmt.Errorf("%d substituted words in %q, want at most %d",
			substituted, phrase, req.Substitutions)
	}
	return nil
}

// matchesPattern reports whether tok is some wordlist word with exactly one
// rune swapped for a grid symbol. Wildcarding each symbol position in turn
// keeps the check correct for lists whose words contain symbols themselves.
func (c *checker) matchesPattern(tok string) bool {
	runes := []rune(tok)
	for i, r := range runes {
		if !diceware.IsSymbol(r) {
			continue
		}
		wild := slices.Clone(runes)
		wild[i] = placeholder
		if c.patterns.Contains(string(wild)) {
			return true
		}
	}
	return false
}

// placeholder never appears in wordlist words or the substitution grid.
const placeholder = '\x00'

// substitutionPatterns wildcards every rune position of every list word.
func substitutionPatterns(list *wordlist.List) *set.Set {
	return set.Collect(func(yield func(string) bool) {
		for _, word := range list.Words() {
			runes := []rune(word)
			for i := range runes {
				wild := slices.Clone(runes)
				wild[i] = placeholder
				if !yield(string(wild)) {
					return
				}
			}
		}
	})
}
