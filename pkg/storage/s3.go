// Package storage uploads finished renders to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// UploadTimeout bounds a single PutObject call
const UploadTimeout = 30 * time.Second

// S3Config holds the connection settings for an S3-compatible endpoint
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Prefix    string // Prepended to every object key
	ACL       string // Optional canned ACL, e.g. "public-read"
}

// Enabled reports whether uploads are configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// putObjectAPI is the subset of *s3.S3 used by Uploader
type putObjectAPI interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// Uploader puts rendered images into a bucket
type Uploader struct {
	config S3Config
	client putObjectAPI
	logger core.Logger
}

// NewUploader creates an S3 session with static credentials and path-style addressing
func NewUploader(cfg S3Config, logger core.Logger) (*Uploader, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("s3 bucket not configured")
	}

	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return newUploader(cfg, s3.New(sess), logger), nil
}

func newUploader(cfg S3Config, client putObjectAPI, logger core.Logger) *Uploader {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Uploader{config: cfg, client: client, logger: logger}
}

// Key returns the full object key for name
func (u *Uploader) Key(name string) string {
	if u.config.Prefix == "" {
		return name
	}
	return path.Join(u.config.Prefix, name)
}

// Upload stores data under the prefixed key and returns that key
func (u *Uploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := u.Key(name)
	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}
	if u.config.ACL != "" {
		input.ACL = aws.String(u.config.ACL)
	}

	if _, err := u.client.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	u.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, u.config.Bucket, size)
	return key, nil
}
