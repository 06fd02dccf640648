// Package s3 stores product images in an S3-compatible bucket.
package s3

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-faster/errors"

	"github.com/xenking/product-drawer/internal/domain/blob"
)

// Config holds bucket location and credentials.
type Config struct {
	Region string
	Bucket string
	Prefix string
	// Endpoint overrides the AWS endpoint for S3-compatible stores (MinIO,
	// R2). Path-style addressing is enabled when it is set.
	Endpoint string
	// PublicBaseURL is the prefix of download URLs, e.g. a CDN in front of
	// the bucket.
	PublicBaseURL string
	// AccessKeyID and SecretAccessKey are optional static credentials; the
	// default AWS credential chain is used when empty.
	AccessKeyID     string
	SecretAccessKey string
}

// API is the subset of the S3 client used by Store.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

var _ blob.Store = (*Store)(nil)

// Store implements blob.Store on top of S3.
type Store struct {
	api     API
	bucket  string
	prefix  string
	baseURL string
}

// New loads the AWS configuration and returns a Store for cfg.Bucket.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewWithAPI(client, cfg), nil
}

// NewWithAPI returns a Store using an existing client.
func NewWithAPI(api API, cfg Config) *Store {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = defaultBaseURL(cfg)
	}
	return &Store{
		api:     api,
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.Prefix, "/"),
		baseURL: base,
	}
}

func defaultBaseURL(cfg Config) string {
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return "https://" + cfg.Bucket + ".s3." + cfg.Region + ".amazonaws.com"
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Put uploads body under the object name.
func (s *Store) Put(ctx context.Context, name string, body io.Reader, contentType string) error {
	if err := blob.ValidateName(name); err != nil {
		return err
	}
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return errors.Wrapf(err, "put object %q", name)
	}
	return nil
}

// DownloadURL checks that the object exists and returns its public URL.
func (s *Store) DownloadURL(ctx context.Context, name string) (string, error) {
	if err := blob.ValidateName(name); err != nil {
		return "", err
	}
	key := s.key(name)
	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", errors.Wrapf(err, "head object %q", name)
	}
	return s.baseURL + "/" + escapeKey(key), nil
}

// Ping checks that the bucket is reachable.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}

func escapeKey(key string) string {
	segs := strings.Split(key, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}
