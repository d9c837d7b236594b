package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/minio"
	"go.akshayshah.org/attest"
)

func TestConditionalCreate(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()
	const key = "wordlists/eff.txt"

	// Nothing stored yet.
	_, err := s.Get(ctx, key)
	attest.ErrorIs(t, err, ErrNotFound)

	// A conditional create succeeds on a fresh key.
	first := []byte("11111\tabacus\n")
	attest.Ok(t, s.Put(ctx, key, first, false))
	got, err := s.Get(ctx, key)
	attest.Ok(t, err)
	attest.Equal(t, got, first)

	// A second conditional create must fail and leave the object alone.
	second := []byte("11111\tzebra\n")
	err = s.Put(ctx, key, second, false)
	attest.ErrorIs(t, err, ErrExists)
	got, err = s.Get(ctx, key)
	attest.Ok(t, err)
	attest.Equal(t, got, first)

	// An overwrite goes through.
	attest.Ok(t, s.Put(ctx, key, second, true))
	got, err = s.Get(ctx, key)
	attest.Ok(t, err)
	attest.Equal(t, got, second)
}

func newStore(tb testing.TB) *Store {
	tb.Helper()
	const user, password = "admin", "password"
	// The MinIO testcontainers module includes verbose test logs by default.
	mc, err := minio.Run(
		tb.Context(),
		"minio/minio:RELEASE.2025-07-23T15-54-02Z",
		minio.WithUsername(user),
		minio.WithPassword(password),
	)
	attest.Ok(tb, err, attest.Sprint("start MinIO container"))
	addr, err := mc.ConnectionString(tb.Context())
	attest.Ok(tb, err, attest.Sprint("get MinIO conn str"))

	s := New(Config{
		Endpoint: fmt.Sprintf("http://%s", addr),
		Region:   "us-east-1",
		Bucket:   "dicepass",
		User:     user,
		Password: password,
		Timeout:  time.Second,
	})
	attest.Ok(tb, s.EnsureBucketExists(tb.Context()), attest.Sprint("create bucket"))
	return s
}
