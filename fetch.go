package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dicepass/dicepass/internal/wordlist"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [url]",
	Short: "Download and validate a wordlist",
	Long:  "Download a wordlist, validate that it parses, and write the raw bytes to a local file.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := newLogger(cmd.Flags())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		url := wordlist.DefaultURL
		if len(args) == 1 {
			url = args[0]
		}
		raw, err := wordlist.Download(cmd.Context(), url)
		if err != nil {
			logger.Error("download failed", "url", url, "err", err)
			os.Exit(1)
		}
		list, err := wordlist.Parse(bytes.NewReader(raw))
		if err != nil {
			logger.Error("wordlist invalid", "url", url, "err", err)
			os.Exit(1)
		}

		out := orFatal(cmd.Flags().GetString("out"))
		if err := os.WriteFile(out, raw, 0o644); err != nil {
			logger.Error("write failed", "path", out, "err", err)
			os.Exit(1)
		}
		logger.Info("wordlist saved", "path", out, "words", list.Len())
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().String("out", "wordlist.txt", "output path")
}
