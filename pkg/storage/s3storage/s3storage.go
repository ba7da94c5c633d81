// Package s3storage stores chunk sets in an S3 compatible bucket.
package s3storage

import (
	"context"
	"crypto/md5" //nolint:gosec // G501: Content-MD5 is an integrity header, not a security primitive
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sgaunet/fsj/pkg/constants"
)

// S3Storage implements the storage interface on top of an S3 bucket.
type S3Storage struct {
	s3Client *s3.Client
	endpoint string
	region   string
	bucket   string
	path     string
}

// Option customises the client built by NewS3Storage.
type Option func(*options)

type options struct {
	accessKey string
	secretKey string
}

// WithStaticCredentials uses the given key pair instead of the default
// credential chain.
func WithStaticCredentials(accessKey, secretKey string) Option {
	return func(o *options) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

// NewS3Storage creates a client for bucket in region. A non empty endpoint
// selects an S3 compatible server addressed in path style.
func NewS3Storage(ctx context.Context, region, endpoint, bucket, path string, opts ...Option) (*S3Storage, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.accessKey == "" && o.secretKey == "" {
		o.accessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		o.secretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if o.accessKey != "" && o.secretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.accessKey, o.secretKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	s := &S3Storage{
		endpoint: endpoint,
		region:   region,
		bucket:   bucket,
		path:     path,
	}
	s.s3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return s, nil
}

// Key returns the object key a file name is stored under.
func (s *S3Storage) Key(name string) string {
	if s.path == "" {
		return name
	}
	return path.Join(s.path, name)
}

// CreateBucket creates the bucket. A bucket already owned by the caller is not an error.
func (s *S3Storage) CreateBucket(ctx context.Context) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	if s.region != "" && s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}
	_, err := s.s3Client.CreateBucket(ctx, input)
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// SaveFile uploads srcPath under dstName. The file is opened once: its MD5
// is computed, then it is rewound and streamed as the request body.
func (s *S3Storage) SaveFile(ctx context.Context, srcPath string, dstName string) error {
	f, err := os.Open(srcPath) //nolint:gosec // G304: uploading user supplied chunk paths is intended
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", srcPath, err)
	}
	defer func() { _ = f.Close() }()

	h := md5.New() //nolint:gosec // G401: see import
	size, err := io.CopyBuffer(h, f, make([]byte, constants.CopyBufferSize))
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", srcPath, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind %s: %w", srcPath, err)
	}

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.Key(dstName)),
		Body:          f,
		ContentLength: aws.Int64(size),
		ContentMD5:    aws.String(base64.StdEncoding.EncodeToString(h.Sum(nil))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", dstName, err)
	}
	return nil
}

// GetFile downloads the object stored under key into dstPath. A partial
// download is removed.
func (s *S3Storage) GetFile(ctx context.Context, key string, dstPath string) error {
	out, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.Key(filepath.Base(key))),
	})
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer func() { _ = out.Body.Close() }()

	//nolint:gosec // G304: writing user supplied chunk paths is intended
	f, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.ChunkFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dstPath, err)
	}
	if _, err := io.CopyBuffer(f, out.Body, make([]byte, constants.CopyBufferSize)); err != nil {
		_ = f.Close()
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to write %s: %w", dstPath, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to close %s: %w", dstPath, err)
	}
	return nil
}
