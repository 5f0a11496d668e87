// Package storage uploads product images to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader stores an image payload and returns its public URL. Upload
// failure is fatal to product creation.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

type Config struct {
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	PublicURL    string
	Folder       string
}

type s3Uploader struct {
	client *s3.Client
	cfg    Config
}

// New creates an S3 uploader. BaseEndpoint may point at a MinIO deployment.
func New(ctx context.Context, cfg Config) (Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Uploader{client: client, cfg: cfg}, nil
}

func (u *s3Uploader) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := u.objectKey(filename)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	base := strings.TrimSuffix(u.cfg.PublicURL, "/")
	if base == "" {
		base = fmt.Sprintf("%s/%s", strings.TrimSuffix(u.cfg.BaseEndpoint, "/"), u.cfg.Bucket)
	}
	return fmt.Sprintf("%s/%s", base, key), nil
}

func (u *s3Uploader) objectKey(filename string) string {
	folder := u.cfg.Folder
	if folder == "" {
		folder = "products"
	}
	return fmt.Sprintf("%s/%s%s", folder, uuid.New(), path.Ext(filename))
}
