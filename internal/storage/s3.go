package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bilgisen/gossipd/internal/config"
)

// R2Endpoint returns the configured endpoint or the account default.
func R2Endpoint(cfg *config.Config) string {
	if cfg.R2Endpoint != "" {
		return cfg.R2Endpoint
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
}

// NewS3Client builds an S3 client pointed at Cloudflare R2.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKey, cfg.R2SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	endpoint := R2Endpoint(cfg)
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}
