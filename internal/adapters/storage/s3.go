package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"eventcatalog/internal/domain"
)

const (
	// MaxImageSize is the largest event image accepted for upload (5MB).
	MaxImageSize = 5 * 1024 * 1024
	// FolderEvents is the S3 prefix for event images.
	FolderEvents = "events"
)

// AllowedImageTypes maps accepted image MIME types to the extension used for the object key.
var AllowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// S3Config holds S3 client configuration.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStore uploads event images to a public-read bucket.
type S3ImageStore struct {
	client putObjectAPI
	cfg    S3Config
	logger *slog.Logger
}

// NewS3ImageStore creates an S3-backed domain.ImageStore. Static credentials are used when both keys
// are set; otherwise the default AWS credential chain applies.
func NewS3ImageStore(ctx context.Context, cfg S3Config, logger *slog.Logger) (*S3ImageStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 image store: bucket is required")
	}
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)))
	} else {
		logger.Warn("S3 image store using default credential chain")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3ImageStore{client: s3.NewFromConfig(awsCfg), cfg: cfg, logger: logger}, nil
}

var _ domain.ImageStore = (*S3ImageStore)(nil)

// ImageKey returns the object key for an uploaded image: events/{uuid}{ext}.
func ImageKey(contentType string) (string, bool) {
	ext, ok := AllowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", false
	}
	return path.Join(FolderEvents, uuid.NewString()+ext), true
}

// PublicObjectURL returns the public URL for key in the configured bucket.
func (s *S3ImageStore) PublicObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

// Upload stores body under a fresh key and returns its public URL. The original filename is only logged.
func (s *S3ImageStore) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	if size > MaxImageSize {
		return "", fmt.Errorf("%w: image exceeds %d bytes", domain.ErrInvalidInput, MaxImageSize)
	}
	key, ok := ImageKey(contentType)
	if !ok {
		return "", fmt.Errorf("%w: unsupported image type %q", domain.ErrInvalidInput, contentType)
	}
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	s.logger.InfoContext(ctx, "event image uploaded", "key", key, "filename", filename, "size", size)
	return s.PublicObjectURL(key), nil
}
