// Package store reads and writes wordlists in S3-compatible object storage,
// letting a fleet of servers share one vetted list.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var (
	// ErrNotFound means the bucket has no object under the requested key.
	ErrNotFound = errors.New("object not found")
	// ErrExists means a conditional create found an existing object.
	ErrExists = errors.New("object already exists")
)

// Config locates the S3-compatible endpoint and bucket holding wordlists.
type Config struct {
	Endpoint string
	Region   string
	Bucket   string
	User     string
	Password string
	Timeout  time.Duration
}

// Store reads and writes wordlist objects in a single bucket.
type Store struct {
	timeout time.Duration
	bucket  string
	client  *s3.Client
}

// New returns a Store for cfg's bucket.
func New(cfg Config) *Store {
	client := s3.New(s3.Options{
		Region:                     cfg.Region,
		BaseEndpoint:               aws.String(cfg.Endpoint),
		DefaultsMode:               aws.DefaultsModeStandard,
		Credentials:                credentials.NewStaticCredentialsProvider(cfg.User, cfg.Password, "" /* session */),
		UsePathStyle:               true,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenSupported,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenSupported,
		HTTPClient: &http.Client{
			Transport: &http.Transport{},
		},
	})
	return &Store{
		timeout: cfg.Timeout,
		bucket:  cfg.Bucket,
		client:  client,
	}
}

// EnsureBucketExists creates the bucket if needed. Owning the bucket already
// is not an error.
func (s *Store) EnsureBucketExists(ctx context.Context) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if hasSmithyCode(err, "BucketAlreadyOwnedByYou") {
		return nil
	}
	return err
}

// Get returns the raw bytes stored under key. A missing object reports
// ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var errNoKey *types.NoSuchKey
		if errors.As(err, &errNoKey) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("get object: %v", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read object: %v", err)
	}
	return data, nil
}

// Put stores data under key. Unless overwrite is set, the write is a
// conditional create and an existing object reports ErrExists.
func (s *Store) Put(ctx context.Context, key string, data []byte, overwrite bool) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if !overwrite {
		input.IfNoneMatch = aws.String("*")
	}

	_, err := s.client.PutObject(ctx, input)
	if hasSmithyCode(err, "PreconditionFailed") {
		return fmt.Errorf("%w: %s", ErrExists, key)
	}
	if err != nil {
		return fmt.Errorf("put object: %v", err)
	}
	return nil
}

func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
