package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config covers any S3-compatible store (Cloudflare R2, MinIO, AWS).
type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
	KeyPrefix       string
}

type S3ImageHost struct {
	s3Client      *s3.Client
	bucketName    string
	publicBaseURL string
	keyPrefix     string
}

func NewS3ImageHost(ctx context.Context, cfg S3Config) (*S3ImageHost, error) {
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.BucketName == "" || cfg.PublicBaseURL == "" {
		return nil, errors.New("invalid S3 configuration: endpoint, credentials, bucket and public base URL are required")
	}
	if _, err := url.Parse(cfg.PublicBaseURL); err != nil {
		return nil, fmt.Errorf("invalid S3 public base URL: %w", err)
	}
	region := cfg.Region
	if region == "" {
		region = "auto" // R2 подписывает запросы с регионом "auto"
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "venues"
	}

	return &S3ImageHost{
		s3Client:      client,
		bucketName:    cfg.BucketName,
		publicBaseURL: cfg.PublicBaseURL,
		keyPrefix:     strings.Trim(prefix, "/"),
	}, nil
}

func (h *S3ImageHost) UploadImage(ctx context.Context, img *DataURI) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", errors.New("s3: empty image")
	}
	ext, err := ExtensionFromContentType(img.ContentType)
	if err != nil {
		return "", err
	}
	key := h.keyPrefix + "/" + uuid.NewString() + ext

	_, err = h.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(h.bucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(img.Data),
		ContentType:   aws.String(img.ContentType),
		ContentLength: aws.Int64(int64(len(img.Data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object (key: %s): %w", key, err)
	}

	return h.PublicURL(key), nil
}

func (h *S3ImageHost) PublicURL(key string) string {
	return strings.TrimRight(h.publicBaseURL, "/") + "/" + strings.TrimLeft(key, "/")
}
