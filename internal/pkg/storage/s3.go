// internal/pkg/storage/s3.go
package storage

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// unsafeChars matches everything outside the safe object-key character set.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

type UploadResult struct {
	Path      string `json:"path"`
	PublicURL string `json:"public_url"`
}

// BlobStore uploads attachments to an S3-compatible bucket.
type BlobStore struct {
	client        *s3.Client
	bucket        string
	region        string
	publicBaseURL string
	logger        *zap.Logger
}

type Config struct {
	Bucket        string
	Region        string
	Endpoint      string // optional, for S3-compatible stores
	PublicBaseURL string // optional, overrides the default public URL
}

func NewBlobStore(ctx context.Context, cfg Config, logger *zap.Logger) (*BlobStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &BlobStore{
		client:        client,
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// Upload stores the file under pathPrefix with a sanitized,
// timestamp-prefixed name so concurrent uploads of the same filename never
// collide.
func (b *BlobStore) Upload(ctx context.Context, file io.Reader, filename, pathPrefix, contentType string) (*UploadResult, error) {
	safe := unsafeChars.ReplaceAllString(filename, "_")
	key := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), safe)
	if pathPrefix != "" {
		key = strings.Trim(pathPrefix, "/") + "/" + key
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := b.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	b.logger.Info("file uploaded",
		zap.String("bucket", b.bucket),
		zap.String("key", key),
	)

	return &UploadResult{
		Path:      key,
		PublicURL: b.publicURL(key),
	}, nil
}

func (b *BlobStore) publicURL(key string) string {
	if b.publicBaseURL != "" {
		return b.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.bucket, b.region, key)
}
