package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.akshayshah.org/attest"
)

func TestResolveArgs(t *testing.T) {
	defaults := request{words: 5, substitutions: 0, separator: " "}

	req, err := resolveArgs(nil, defaults)
	attest.Ok(t, err)
	attest.Equal(t, req.words, 5)
	attest.Equal(t, req.substitutions, 0)
	attest.Equal(t, req.source, "")

	// One integer is a word count.
	req, err = resolveArgs([]string{"7"}, defaults)
	attest.Ok(t, err)
	attest.Equal(t, req.words, 7)
	attest.Equal(t, req.source, "")

	// One non-integer is a wordlist source.
	req, err = resolveArgs([]string{"words.txt"}, defaults)
	attest.Ok(t, err)
	attest.Equal(t, req.source, "words.txt")
	attest.Equal(t, req.words, 5)

	// Two integers are words and substitutions.
	req, err = resolveArgs([]string{"7", "2"}, defaults)
	attest.Ok(t, err)
	attest.Equal(t, req.words, 7)
	attest.Equal(t, req.substitutions, 2)

	// A source followed by an integer.
	req, err = resolveArgs([]string{"words.txt", "7"}, defaults)
	attest.Ok(t, err)
	attest.Equal(t, req.source, "words.txt")
	attest.Equal(t, req.words, 7)
	attest.Equal(t, req.substitutions, 0)

	// All three.
	req, err = resolveArgs([]string{"words.txt", "7", "2"}, defaults)
	attest.Ok(t, err)
	attest.Equal(t, req.source, "words.txt")
	attest.Equal(t, req.words, 7)
	attest.Equal(t, req.substitutions, 2)

	_, err = resolveArgs([]string{"words.txt", "seven"}, defaults)
	attest.Error(t, err)

	_, err = resolveArgs([]string{"7", "two"}, defaults)
	attest.Error(t, err)

	_, err = resolveArgs([]string{"words.txt", "7", "two"}, defaults)
	attest.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	attest.Ok(t, os.WriteFile(path, []byte("words = 6\nseparator = \"-\"\n"), 0o644))

	cfg, err := loadConfig(path, true)
	attest.Ok(t, err)
	attest.NotZero(t, cfg.Words)
	attest.Equal(t, *cfg.Words, 6)
	attest.NotZero(t, cfg.Separator)
	attest.Equal(t, *cfg.Separator, "-")
	attest.Zero(t, cfg.Substitutions)

	req := request{words: 5, substitutions: 0, separator: " "}
	req.apply(cfg)
	attest.Equal(t, req.words, 6)
	attest.Equal(t, req.separator, "-")

	// Positional arguments beat the config file.
	req, err = resolveArgs([]string{"9"}, req)
	attest.Ok(t, err)
	attest.Equal(t, req.words, 9)
	attest.Equal(t, req.separator, "-")
}

func TestConfigFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.toml")

	// A missing file at the default path is fine.
	cfg, err := loadConfig(missing, false)
	attest.Ok(t, err)
	attest.Zero(t, cfg.Words)

	// An explicitly named missing file is not.
	_, err = loadConfig(missing, true)
	attest.Error(t, err)
}
