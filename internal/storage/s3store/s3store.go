package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/MikhailRaia/link-shortener/internal/pool"
	"github.com/MikhailRaia/link-shortener/internal/storage"
)

// MaxObjectSize bounds how much of an object body is read. Anything larger
// cannot be a usable Location header.
const MaxObjectSize = 16 << 10

const contentType = "text/plain; charset=utf-8"

// API is the subset of the S3 client used by Storage.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

var _ API = (*s3.Client)(nil)

// Storage reads links from objects in a single bucket. The object key is
// keyPrefix followed by the lookup key.
type Storage struct {
	client    API
	bucket    string
	keyPrefix string
	buffers   *pool.Pool[*bytes.Buffer]
}

// NewStorage builds a Storage with an S3 client created from cfg.
func NewStorage(cfg aws.Config, bucket, keyPrefix string, opts ...func(*s3.Options)) *Storage {
	return NewStorageWithClient(s3.NewFromConfig(cfg, opts...), bucket, keyPrefix)
}

// NewStorageWithClient builds a Storage on top of an existing client.
func NewStorageWithClient(client API, bucket, keyPrefix string) *Storage {
	return &Storage{
		client:    client,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		buffers:   pool.NewBufferPool(16),
	}
}

// Options describes how to reach the bucket.
type Options struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// ClientOptions converts Options into S3 client option functions. A custom
// endpoint (MinIO, localstack) switches to path-style addressing.
func ClientOptions(o Options) []func(*s3.Options) {
	var opts []func(*s3.Options)

	if o.Region != "" {
		opts = append(opts, func(so *s3.Options) {
			so.Region = o.Region
		})
	}

	if o.AccessKeyID != "" && o.SecretAccessKey != "" {
		opts = append(opts, func(so *s3.Options) {
			so.Credentials = credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, "")
		})
	}

	if o.Endpoint != "" {
		opts = append(opts, func(so *s3.Options) {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		})
	}

	return opts
}

// Get downloads the object stored under key and returns its content as-is.
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("%w: %v", storage.ErrLinkNotFound, err)
		}
		return "", fmt.Errorf("getting object %q: %w", s.objectKey(key), err)
	}
	defer out.Body.Close()

	buf := s.buffers.Get()
	defer s.buffers.Put(buf)

	n, err := buf.ReadFrom(io.LimitReader(out.Body, MaxObjectSize+1))
	if err != nil {
		return "", fmt.Errorf("reading object %q: %w", s.objectKey(key), err)
	}
	if n > MaxObjectSize {
		return "", fmt.Errorf("object %q exceeds %d bytes", s.objectKey(key), MaxObjectSize)
	}

	return buf.String(), nil
}

// Put uploads url as the content of key.
func (s *Storage) Put(ctx context.Context, key, url string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.objectKey(key)),
		Body:          strings.NewReader(url),
		ContentLength: aws.Int64(int64(len(url))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("putting object %q: %w", s.objectKey(key), err)
	}
	return nil
}

// Delete removes the object stored under key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("deleting object %q: %w", s.objectKey(key), err)
	}
	return nil
}

// Ping checks that the bucket exists and is reachable with the current
// credentials.
func (s *Storage) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Storage) objectKey(key string) string {
	return s.keyPrefix + key
}

// isNotFound matches NoSuchKey as well as the bare 404 S3 returns when the
// response carries no error body.
func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}

	return false
}
