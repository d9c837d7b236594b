package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dicepass/dicepass/internal/store"
	"github.com/dicepass/dicepass/internal/wordlist"
)

var publishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Upload a wordlist to object storage",
	Long:  "Validate a local wordlist and upload it to the configured bucket, where serve and generate can read it as an s3://bucket/key source.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := newLogger(cmd.Flags())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		path := args[0]
		list, err := wordlist.LoadFile(path)
		if err != nil {
			logger.Error("wordlist invalid", "path", path, "err", err)
			os.Exit(1)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read failed", "path", path, "err", err)
			os.Exit(1)
		}

		st := storeFromFlags(cmd.Flags(), "")
		ctx := cmd.Context()
		for {
			if err := st.EnsureBucketExists(ctx); err != nil {
				backoff := time.Second
				logger.Info("bucket not ready", "err", err, "retry_after", backoff)
				time.Sleep(backoff)
				continue
			}
			break
		}

		key := orFatal(cmd.Flags().GetString("key"))
		force := orFatal(cmd.Flags().GetBool("force"))
		if err := st.Put(ctx, key, raw, force); err != nil {
			if errors.Is(err, store.ErrExists) {
				logger.Error("wordlist already published, rerun with --force to overwrite", "key", key)
			} else {
				logger.Error("upload failed", "key", key, "err", err)
			}
			os.Exit(1)
		}
		logger.Info("wordlist published",
			"bucket", orFatal(cmd.Flags().GetString("s3-bucket")),
			"key", key,
			"words", list.Len())
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().String("key", "wordlist.txt", "object key")
	publishCmd.Flags().Bool("force", false, "overwrite an existing object")
	registerS3Flags(publishCmd.Flags())
}
