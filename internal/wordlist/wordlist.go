// Package wordlist loads and indexes diceware wordlists.
//
// A wordlist maps five-digit dice-roll keys (each digit 1-6) to words, one
// entry per line in the form "<key><TAB><word>". Both the EFF large wordlist
// and Reinhold's original list use this shape.
package wordlist

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"os"
	"slices"
	"strings"
)

// DefaultURL is the canonical remote wordlist, fetched when no local list is
// supplied.
const DefaultURL = "https://www.eff.org/files/2016/07/18/eff_large_wordlist.txt"

var (
	// ErrEmpty indicates a source that parsed cleanly but produced no
	// entries.
	ErrEmpty = errors.New("wordlist has no entries")
	// ErrMalformed indicates a source with no key-tab-word lines at all.
	ErrMalformed = errors.New("wordlist has no tab-separated lines")
)

// List is an immutable mapping from dice-roll keys to words. A List always
// has at least one entry.
type List struct {
	words map[string]string
}

// FromMap constructs a List from an existing key-to-word mapping. The mapping
// is copied, so later mutation of the argument doesn't affect the List.
func FromMap(words map[string]string) (*List, error) {
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return &List{words: maps.Clone(words)}, nil
}

// Parse reads a wordlist from r. Lines without a tab are skipped, which
// tolerates the PGP armor and banner text wrapping the canonical list.
// Duplicate keys keep the last entry, and entries with an empty key or word
// are dropped.
func Parse(r io.Reader) (*List, error) {
	words := make(map[string]string)
	sawTab := false
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, word, ok := strings.Cut(sc.Text(), "\t")
		if !ok {
			continue
		}
		sawTab = true
		key = strings.TrimSpace(key)
		word = strings.TrimSpace(word)
		if key == "" || word == "" {
			continue
		}
		words[key] = word
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan wordlist: %w", err)
	}
	if !sawTab {
		return nil, ErrMalformed
	}
	return FromMap(words)
}

// LoadFile parses the wordlist at path.
func LoadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordlist: %w", err)
	}
	defer f.Close()
	list, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return list, nil
}

// FetchURL downloads and parses the wordlist at url.
func FetchURL(ctx context.Context, url string) (*List, error) {
	raw, err := Download(ctx, url)
	if err != nil {
		return nil, err
	}
	list, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return list, nil
}

// Download fetches the raw bytes of the wordlist at url without parsing
// them. Callers that want a List should prefer FetchURL.
func Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch wordlist: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch wordlist: %s returned %s", url, res.Status)
	}
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read wordlist body: %w", err)
	}
	return raw, nil
}

// Lookup returns the word stored under key.
func (l *List) Lookup(key string) (string, bool) {
	word, ok := l.words[key]
	return word, ok
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.words)
}

// Words returns every word in the list, sorted. It's safe for the caller to
// mutate the returned slice.
func (l *List) Words() []string {
	return slices.Sorted(maps.Values(l.words))
}
