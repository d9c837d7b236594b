package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/antithesishq/antithesis-sdk-go/assert"
	"github.com/spf13/cobra"

	"github.com/dicepass/dicepass/internal/client"
	"github.com/dicepass/dicepass/internal/proptest"
	"github.com/dicepass/dicepass/internal/wordlist"
)

var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Start a continuous testing workload",
	Long:  "Start a continuous testing workload. The workload runs indefinitely, sending random request streams to a passphrase server and verifying that every response satisfies the generation contract.",
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := newLogger(cmd.Flags())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		serverAddr, err := cmd.Flags().GetString("addr")
		if err != nil {
			logger.Error("server addr flag invalid", "err", err)
			os.Exit(1)
		}
		addr, err := net.ResolveTCPAddr("tcp", serverAddr)
		if err != nil {
			logger.Error("resolve server addr failed", "server_addr", serverAddr, "err", err)
			os.Exit(1)
		}
		logger.Info("resolved server addr", "server_addr", addr)

		// With the server's wordlist in hand, the checker verifies exact
		// membership instead of just response shapes.
		var list *wordlist.List
		if source := orFatal(cmd.Flags().GetString("wordlist")); source != "" {
			list, err = resolveWordlist(cmd.Context(), cmd.Flags(), source)
			if err != nil {
				logger.Error("load wordlist failed", "source", source, "err", err)
				os.Exit(1)
			}
		}
		sep := orFatal(cmd.Flags().GetString("separator"))

		pinger := dial(logger, addr) // blocks until the server is ready
		defer pinger.CloseAndLog(logger)
		logger.Info("setup complete", "server_addr", addr)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case <-sig:
				os.Exit(0)
			default:
				loadAndVerify(logger, addr, list, sep)
			}
		}
	},
}

func loadAndVerify(logger *slog.Logger, addr net.Addr, list *wordlist.List, sep string) {
	// Generate a large, randomized workload.
	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	workloads := proptest.GenWorkloads(r)

	// Run the workload and collect the results.
	results := make([][]proptest.Result, len(workloads))
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i, workload := range workloads {
		wg.Go(func() {
			client := dial(logger, addr)
			defer client.CloseAndLog(logger)
			<-start
			results[i] = proptest.RunWorkload(logger, client, workload)
		})
	}
	close(start)
	wg.Wait()

	// Every response must satisfy the generation contract.
	err := proptest.Check(list, sep, workloads, results)
	details := map[string]any{"clients": len(workloads)}
	if err != nil {
		details["error"] = err.Error()
	}
	assert.Always(err == nil, "Workload responses satisfy the generation contract", details)
	if err != nil {
		logger.Error("contract check failed", "err", err)
		return
	}
	logger.Info("contract check passed", "clients", len(workloads))
}

func dial(logger *slog.Logger, addr net.Addr) *client.Client {
	for {
		c, err := client.New(addr)
		if err != nil {
			logger.Debug("dial failed", "retry_after", time.Second, "err", err)
			time.Sleep(time.Second)
			continue
		}
		if err := c.Ping(); err != nil {
			_ = c.Close()
			logger.Debug("ping failed", "retry_after", time.Second, "err", err)
			time.Sleep(time.Second)
			continue
		}
		return c
	}
}

func init() {
	rootCmd.AddCommand(workloadCmd)

	workloadCmd.Flags().String("addr", "dicepass:7776", "passphrase server address")
	workloadCmd.Flags().String("wordlist", "", "wordlist source for exact membership checks")
	workloadCmd.Flags().String("separator", " ", "word separator the server is configured with")
	registerS3Flags(workloadCmd.Flags())
}
