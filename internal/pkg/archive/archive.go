// Package archive mirrors finished magazine PDFs into an S3-compatible
// bucket. The archive is best effort: the pipeline logs failures and moves
// on, the local output directory stays the source of truth.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"

	"github.com/dailypress/newsroom/internal/pkg/env"
)

const keyPrefix = "magazines/"

// Config holds the S3 archive configuration.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // optional, for S3-compatible services
	Enabled         bool
}

// LoadConfig reads the S3_* env keys. The archive is enabled only when
// explicitly switched on and fully configured.
func LoadConfig() *Config {
	return &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "auto"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		Enabled:         env.GetEnv("S3_ARCHIVE_ENABLED", "false") == "true",
	}
}

// IsEnabled reports whether the archive can be used.
func (c *Config) IsEnabled() bool {
	return c.Enabled && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != ""
}

// Client wraps the S3 client with archive-specific behavior.
type Client struct {
	s3Client *s3.Client
	config   *Config
}

// NewClient creates an archive client and verifies bucket access.
func NewClient(cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("S3 archive is disabled")
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true // path-style URLs for S3-compatible hosts
			o.UseAccelerate = false
		}
	})

	client := &Client{s3Client: s3Client, config: cfg}

	_, err = s3Client.HeadBucket(context.TODO(), &s3.HeadBucketInput{
		Bucket: aws.String(cfg.BucketName),
	})
	if err != nil {
		return nil, fmt.Errorf("bucket %s not accessible: %w", cfg.BucketName, err)
	}

	log.Infof("[Archive] S3 archive enabled for bucket %s", cfg.BucketName)
	return client, nil
}

// Store uploads a magazine PDF under magazines/<filename>.
func (c *Client) Store(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	key := keyPrefix + filepath.Base(path)
	_, err = c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.config.BucketName),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	log.Infof("[Archive] stored %s", key)
	return nil
}

// SetupFromEnv builds the archiver when configured, nil otherwise.
func SetupFromEnv() *Client {
	cfg := LoadConfig()
	if !cfg.IsEnabled() {
		if cfg.Enabled {
			log.Warnf("[Archive] S3_ARCHIVE_ENABLED is set but credentials or bucket are missing")
		}
		return nil
	}
	client, err := NewClient(cfg)
	if err != nil {
		log.Warnf("[Archive] disabled: %v", err)
		return nil
	}
	return client
}
