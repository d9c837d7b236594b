package main

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/dicepass/dicepass/internal/store"
	"github.com/dicepass/dicepass/internal/wordlist"
)

// registerS3Flags adds the object-storage flags shared by every command that
// touches s3:// wordlist sources.
func registerS3Flags(flags *pflag.FlagSet) {
	flags.String("s3-addr", "minio:9000", "object storage address")
	flags.String("s3-region", "us-east-1", "object storage region")
	flags.String("s3-bucket", "dicepass", "object storage bucket")
	flags.String("s3-user", "admin", "object storage user")
	flags.String("s3-pass", "password", "object storage password")
	flags.Duration("s3-timeout", time.Minute, "object storage timeout")
}

// storeFromFlags builds an object-store client from the s3 flags. An empty
// bucket falls back to the --s3-bucket flag.
func storeFromFlags(flags *pflag.FlagSet, bucket string) *store.Store {
	if bucket == "" {
		bucket = orFatal(flags.GetString("s3-bucket"))
	}
	endpoint := orFatal(flags.GetString("s3-addr"))
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	return store.New(store.Config{
		Endpoint: endpoint,
		Region:   orFatal(flags.GetString("s3-region")),
		Bucket:   bucket,
		User:     orFatal(flags.GetString("s3-user")),
		Password: orFatal(flags.GetString("s3-pass")),
		Timeout:  orFatal(flags.GetDuration("s3-timeout")),
	})
}

// resolveWordlist loads a wordlist from a source string: an s3://bucket/key
// object, an http(s):// URL, or a filesystem path. Empty means the default
// remote list.
func resolveWordlist(ctx context.Context, flags *pflag.FlagSet, source string) (*wordlist.List, error) {
	if source == "" {
		source = wordlist.DefaultURL
	}
	switch {
	case strings.HasPrefix(source, "s3://"):
		bucket, key, err := splitObjectURL(source)
		if err != nil {
			return nil, err
		}
		raw, err := storeFromFlags(flags, bucket).Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		list, err := wordlist.Parse(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", source, err)
		}
		return list, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return wordlist.FetchURL(ctx, source)
	default:
		return wordlist.LoadFile(source)
	}
}

func splitObjectURL(source string) (bucket, key string, err error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", "", fmt.Errorf("parse %s: %v", source, err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("source %s must look like s3://bucket/key", source)
	}
	return u.Host, key, nil
}
