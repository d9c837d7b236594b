package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dicepass/dicepass/internal/server"
	"github.com/dicepass/dicepass/internal/wordlist"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the passphrase server",
	Long:  "Start the passphrase server. Clients draw diceware passphrases over a Valkey-style wire protocol.",
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := newLogger(cmd.Flags())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		source := orFatal(cmd.Flags().GetString("wordlist"))
		list := loadServeWordlist(cmd, logger, source)

		srv := server.New(server.Config{
			Wordlist:             list,
			DefaultWords:         orFatal(cmd.Flags().GetInt("words")),
			DefaultSubstitutions: orFatal(cmd.Flags().GetInt("substitutions")),
			MaxWords:             orFatal(cmd.Flags().GetInt("max-words")),
			Separator:            orFatal(cmd.Flags().GetString("separator")),
		})

		addr := orFatal(cmd.Flags().GetString("addr"))
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			logger.Error("listen failed", "addr", addr, "err", err)
			os.Exit(1)
		}

		var wg sync.WaitGroup
		wg.Go(func() {
			logger.Info("starting server", "addr", addr, "words", list.Len())
			if err := srv.ServeTCP(ln); err != nil {
				logger.Error("serve failed", "err", err)
			}
		})
		defer func() {
			if err := srv.Close(); err != nil {
				logger.Error("close failed", "err", err)
				os.Exit(1)
			}
			wg.Wait()
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
	},
}

// loadServeWordlist resolves the wordlist source, retrying remote sources
// until they come up. Local paths and permanently invalid lists fail fast.
func loadServeWordlist(cmd *cobra.Command, logger *slog.Logger, source string) *wordlist.List {
	remote := source == "" || strings.Contains(source, "://")
	for {
		list, err := resolveWordlist(cmd.Context(), cmd.Flags(), source)
		if err == nil {
			return list
		}
		permanent := errors.Is(err, wordlist.ErrMalformed) || errors.Is(err, wordlist.ErrEmpty)
		if !remote || permanent {
			logger.Error("load wordlist failed", "source", source, "err", err)
			os.Exit(1)
		}
		backoff := time.Second
		logger.Info("wordlist not ready", "err", err, "retry_after", backoff)
		time.Sleep(backoff)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":7776", "address to listen on")
	serveCmd.Flags().String("wordlist", "", "wordlist source (path, URL, or s3://bucket/key)")
	serveCmd.Flags().Int("words", 5, "default words per passphrase")
	serveCmd.Flags().Int("substitutions", 0, "default symbol substitutions per passphrase")
	serveCmd.Flags().Int("max-words", 64, "maximum words per request")
	serveCmd.Flags().String("separator", " ", "word separator")
	registerS3Flags(serveCmd.Flags())
}
