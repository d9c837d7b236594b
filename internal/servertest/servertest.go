// Package servertest provides utilities for testing passphrase servers.
package servertest

import (
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"go.akshayshah.org/attest"

	"github.com/dicepass/dicepass/internal/client"
	"github.com/dicepass/dicepass/internal/server"
	"github.com/dicepass/dicepass/internal/wordlist"
)

// Request defaults and caps every server started by this package uses.
const (
	DefaultWords         = 5
	DefaultSubstitutions = 0
	MaxWords             = 64
)

// New starts a passphrase server backed by list and returns one
// ready-to-use client.
func New(tb testing.TB, list *wordlist.List) *client.Client {
	tb.Helper()
	return NewClients(tb, list, 1)[0]
}

// NewClients starts passphrase servers backed by list and returns n
// ready-to-use clients. Servers and clients are shut down automatically
// when the test completes. As long as n is greater than one, clients are
// spread over multiple servers.
func NewClients(tb testing.TB, list *wordlist.List, n int) []*client.Client {
	tb.Helper()
	attest.True(tb, n > 0, attest.Sprintf("num clients must be positive"))

	numServers := 1
	if n > 1 {
		numServers = n / 2
	}

	logger := NewLogger(tb)
	serverAddrs := make([]net.Addr, numServers)
	for i := range serverAddrs {
		srv := server.New(server.Config{
			Wordlist:             list,
			DefaultWords:         DefaultWords,
			DefaultSubstitutions: DefaultSubstitutions,
			MaxWords:             MaxWords,
		})

		ln, err := net.Listen("tcp", "localhost:0") // closed by redcon server
		attest.Ok(tb, err, attest.Sprint("listen on ephemeral port"))

		var wg sync.WaitGroup
		logger.Debug("starting redcon server", "server_id", i, "addr", ln.Addr())
		wg.Go(func() {
			attest.Ok(tb, srv.ServeTCP(ln), attest.Sprint("redcon serve"))
		})
		tb.Cleanup(func() {
			attest.Ok(tb, srv.Close(), attest.Sprint("redcon close"))
			wg.Wait()
		})
		serverAddrs[i] = ln.Addr()
	}

	clients := make([]*client.Client, n)
	for i := range clients {
		c := dialReady(tb, logger, serverAddrs[i%len(serverAddrs)])
		tb.Cleanup(func() {
			attest.Ok(tb, c.Close(), attest.Sprint("client close"))
		})
		clients[i] = c
	}
	return clients
}

// dialReady dials addr until the server there answers a ping.
func dialReady(tb testing.TB, logger *slog.Logger, addr net.Addr) *client.Client {
	tb.Helper()
	for {
		backoff := 100 * time.Millisecond
		c, err := client.New(addr)
		if err != nil {
			logger.Debug("redcon server not ready", "addr", addr, "retry_after", backoff)
			time.Sleep(backoff)
			continue
		}
		if err := c.Ping(); err != nil {
			_ = c.Close()
			logger.Debug("redcon server not ready", "addr", addr, "retry_after", backoff)
			time.Sleep(backoff)
			continue
		}
		return c
	}
}

// NewLogger creates a structured logger that writes to the supplied
// testing.TB.
func NewLogger(tb testing.TB) *slog.Logger {
	handler := slog.NewTextHandler(tb.Output(), &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
	})
	return slog.New(handler)
}
