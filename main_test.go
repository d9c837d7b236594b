package main_test

import (
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"go.akshayshah.org/attest"

	"github.com/dicepass/dicepass/internal/proptest"
	"github.com/dicepass/dicepass/internal/servertest"
	"github.com/dicepass/dicepass/internal/wordlisttest"
)

func TestExample(t *testing.T) {
	// This is a simple integration test: it doesn't use property-based
	// testing or Antithesis.
	list := wordlisttest.Complete(t)
	c := servertest.New(t, list)

	attest.Ok(t, c.Ping())

	n, err := c.Words()
	attest.Ok(t, err)
	attest.Equal(t, n, list.Len())

	phrase, err := c.Generate(4, 2)
	attest.Ok(t, err)
	attest.Equal(t, len(strings.Split(phrase, " ")), 4)

	phrase, err = c.GenerateDefault()
	attest.Ok(t, err)
	attest.Equal(t, len(strings.Split(phrase, " ")), servertest.DefaultWords)

	bits, err := c.Entropy(5, 0)
	attest.Ok(t, err)
	attest.True(t, bits > 0)

	// Domain errors come back as ERR replies.
	_, err = c.Generate(2, 3)
	attest.Error(t, err)
	attest.True(t, strings.Contains(err.Error(), "substitutions exceed word count"))

	_, err = c.Generate(servertest.MaxWords+1, 0)
	attest.Error(t, err)
	attest.True(t, strings.Contains(err.Error(), "max capacity"))
}

func TestGenerationContract(t *testing.T) {
	// This is a property-based test. Rather than testing with hard-coded
	// example inputs, we generate a random concurrent workload, execute it,
	// and verify that every response satisfies the generation contract:
	// exactly the requested number of wordlist words, each altered by at
	// most one symbol substitution, and no more substituted words than
	// requested.
	//
	// This test uses the same proptest package as the Antithesis workload
	// (in workload.go). This is a common pattern: factoring out
	// property-based testing helpers lets developers iterate quickly on
	// their workstations, gaining confidence before kicking off a longer
	// test on the Antithesis platform.
	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	workloads := proptest.GenWorkloads(r)

	list := wordlisttest.Complete(t)
	clients := servertest.NewClients(t, list, len(workloads))

	// To increase the chances that requests overlap in flight, block the
	// clients until everyone's ready to start.
	results := make([][]proptest.Result, len(workloads))
	var wg sync.WaitGroup
	start := make(chan struct{})
	logger := servertest.NewLogger(t)
	for i, workload := range workloads {
		wg.Go(func() {
			<-start
			results[i] = proptest.RunWorkload(logger, clients[i], workload)
		})
	}
	close(start)
	wg.Wait()

	attest.Ok(t, proptest.Check(list, " ", workloads, results))
}
