package proptest

import (
	"math/rand/v2"
	"testing"

	"go.akshayshah.org/attest"

	"github.com/dicepass/dicepass/internal/diceware"
	"github.com/dicepass/dicepass/internal/op"
	"github.com/dicepass/dicepass/internal/wordlist"
)

func TestGenWorkloads(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	workloads := GenWorkloads(r)
	attest.True(t, len(workloads) >= 2 && len(workloads) <= 4)
	for _, workload := range workloads {
		attest.True(t, len(workload) >= 128 && len(workload) <= 255)
		for _, req := range workload {
			attest.True(t, req.Words >= 1 && req.Words <= MaxWords)
			attest.True(t, req.Substitutions >= 0 && req.Substitutions <= req.Words)
		}
	}
}

func TestCheckPhrase(t *testing.T) {
	list, err := wordlist.FromMap(map[string]string{
		"11111": "alpha",
		"11112": "bravo",
	})
	attest.Ok(t, err)
	c := newChecker(list, " ")
	req := Request{Op: op.Generate, Words: 2, Substitutions: 1}

	// Unmodified words pass.
	attest.Ok(t, c.check(req, Result{Phrase: "alpha bravo"}))

	// One single-symbol substitution passes.
	attest.Ok(t, c.check(req, Result{Phrase: "alpha br$vo"}))

	// More substituted words than requested fail.
	attest.Error(t, c.check(req, Result{Phrase: "a%pha br$vo"}))

	// Words not derivable from the list fail.
	attest.Error(t, c.check(req, Result{Phrase: "alpha zulu!"}))

	// Two symbols in one word fail.
	attest.Error(t, c.check(req, Result{Phrase: "alpha b##vo"}))

	// Wrong word count fails.
	attest.Error(t, c.check(req, Result{Phrase: "alpha"}))
}

func TestCheckResponses(t *testing.T) {
	list, err := wordlist.FromMap(map[string]string{"11111": "alpha"})
	attest.Ok(t, err)
	c := newChecker(list, " ")

	bits := diceware.Entropy(list.Len(), 3, 1)
	attest.Ok(t, c.check(Request{Op: op.Entropy, Words: 3, Substitutions: 1}, Result{Bits: bits}))
	attest.Error(t, c.check(Request{Op: op.Entropy, Words: 3, Substitutions: 1}, Result{Bits: bits + 1}))

	attest.Ok(t, c.check(Request{Op: op.Words}, Result{Count: 1}))
	attest.Error(t, c.check(Request{Op: op.Words}, Result{Count: 2}))

	attest.Ok(t, c.check(Request{Op: op.Ping}, Result{}))
}

func TestCheckShapeOnly(t *testing.T) {
	// Without a wordlist the checker still verifies response shapes.
	c := newChecker(nil, " ")
	req := Request{Op: op.Generate, Words: 2, Substitutions: 0}

	attest.Ok(t, c.check(req, Result{Phrase: "anything goes"}))
	attest.Error(t, c.check(req, Result{Phrase: "anything"}))
	attest.Error(t, c.check(Request{Op: op.Entropy, Words: 2}, Result{Bits: 0}))
	attest.Error(t, c.check(Request{Op: op.Words}, Result{Count: 0}))
}
