package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dicepass/dicepass/internal/diceware"
)

var generateCmd = &cobra.Command{
	Use:   "generate [wordlist] [words] [substitutions]",
	Short: "Generate a diceware passphrase",
	Long: `Generate a diceware passphrase.

Positional arguments mirror the classic tool: a single integer is a word
count and anything else is a wordlist source; two integers are words and
substitutions, while a source followed by an integer is a wordlist and a
word count; three arguments are a source, words, and substitutions. Sources
may be filesystem paths, http(s):// URLs, or s3://bucket/key objects.`,
	Args: cobra.MaximumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := newLogger(cmd.Flags())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		cfg, err := loadConfig(orFatal(cmd.Flags().GetString("config")), cmd.Flags().Changed("config"))
		if err != nil {
			logger.Error("load config failed", "err", err)
			os.Exit(1)
		}

		req := request{words: 5, substitutions: 0, separator: " "}
		req.apply(cfg)
		if cmd.Flags().Changed("separator") {
			req.separator = orFatal(cmd.Flags().GetString("separator"))
		}
		req, err = resolveArgs(args, req)
		if err != nil {
			logger.Error("bad arguments", "err", err)
			os.Exit(1)
		}

		list, err := resolveWordlist(cmd.Context(), cmd.Flags(), req.source)
		if err != nil {
			logger.Error("load wordlist failed", "source", req.source, "err", err)
			os.Exit(1)
		}

		gen := diceware.New(diceware.Config{Wordlist: list, Separator: req.separator})
		phrase, err := gen.Generate(req.words, req.substitutions)
		if err != nil {
			logger.Error("generate failed", "err", err)
			os.Exit(1)
		}
		fmt.Println(phrase)

		if orFatal(cmd.Flags().GetBool("entropy")) {
			logger.Info("entropy estimate",
				"bits", diceware.Entropy(list.Len(), req.words, req.substitutions),
				"words", req.words,
				"substitutions", req.substitutions,
				"list_size", list.Len())
		}
	},
}

// request is what one generate invocation resolved to.
type request struct {
	source        string
	words         int
	substitutions int
	separator     string
}

// apply folds the config file's values over the built-in defaults.
func (r *request) apply(cfg fileConfig) {
	if cfg.Words != nil {
		r.words = *cfg.Words
	}
	if cfg.Substitutions != nil {
		r.substitutions = *cfg.Substitutions
	}
	if cfg.Separator != nil {
		r.separator = *cfg.Separator
	}
	if cfg.Wordlist != nil {
		r.source = *cfg.Wordlist
	}
}

// resolveArgs folds the positional arguments over defaults. An integer in
// the first position is a word count; anything else is a wordlist source.
func resolveArgs(args []string, defaults request) (request, error) {
	req := defaults
	switch len(args) {
	case 0:
	case 1:
		if n, err := strconv.Atoi(args[0]); err == nil {
			req.words = n
		} else {
			req.source = args[0]
		}
	case 2:
		if n, err := strconv.Atoi(args[0]); err == nil {
			m, err := strconv.Atoi(args[1])
			if err != nil {
				return request{}, fmt.Errorf("substitutions %q must be an integer", args[1])
			}
			req.words, req.substitutions = n, m
		} else {
			m, err := strconv.Atoi(args[1])
			if err != nil {
				return request{}, fmt.Errorf("words %q must be an integer", args[1])
			}
			req.source, req.words = args[0], m
		}
	case 3:
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return request{}, fmt.Errorf("words %q must be an integer", args[1])
		}
		m, err := strconv.Atoi(args[2])
		if err != nil {
			return request{}, fmt.Errorf("substitutions %q must be an integer", args[2])
		}
		req.source, req.words, req.substitutions = args[0], n, m
	default:
		return request{}, fmt.Errorf("expected [wordlist] [words] [substitutions], got %d arguments", len(args))
	}
	return req, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("config", defaultConfigPath(), "TOML defaults file")
	generateCmd.Flags().String("separator", " ", "word separator")
	generateCmd.Flags().Bool("entropy", false, "log the entropy estimate")
	registerS3Flags(generateCmd.Flags())
}
