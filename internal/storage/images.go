package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bilgisen/gossipd/internal/config"
	"github.com/bilgisen/gossipd/internal/utils"
)

// ImageStore turns generated image bytes into a URL a browser can load.
type ImageStore interface {
	Save(ctx context.Context, mimeType string, data []byte) (string, error)
}

// InlineStore returns base64 data URLs and keeps nothing.
type InlineStore struct{}

func (InlineStore) Save(_ context.Context, mimeType string, data []byte) (string, error) {
	return DataURL(mimeType, data), nil
}

// DataURL encodes data as a data: URL.
func DataURL(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// objectPutter is the subset of *s3.Client used by S3Store.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads images to the bucket and returns their public URL.
type S3Store struct {
	client    objectPutter
	bucket    string
	publicURL string
}

func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	client, err := NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &S3Store{
		client:    client,
		bucket:    cfg.R2Bucket,
		publicURL: strings.TrimRight(cfg.R2PublicURL, "/"),
	}, nil
}

// ObjectKey names an image by the hash of its content.
func ObjectKey(mimeType string, data []byte) string {
	ext := strings.TrimPrefix(mimeType, "image/")
	if i := strings.IndexAny(ext, "+;"); i >= 0 {
		ext = ext[:i]
	}
	if ext == "" || ext == mimeType {
		ext = "bin"
	}
	return fmt.Sprintf("images/%s.%s", utils.HashBytes(data), ext)
}

func (s *S3Store) Save(ctx context.Context, mimeType string, data []byte) (string, error) {
	key := ObjectKey(mimeType, data)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s.publicURL + "/" + key, nil
}

// NewImageStore returns the store selected by cfg.ImageStore.
func NewImageStore(ctx context.Context, cfg *config.Config) (ImageStore, error) {
	switch cfg.ImageStore {
	case "", "inline":
		return InlineStore{}, nil
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown image store %q", cfg.ImageStore)
	}
}
