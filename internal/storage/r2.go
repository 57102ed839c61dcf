package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	appconfig "borewell-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Archive uploads generated report PDFs to a Cloudflare R2 bucket so they
// survive server redeploys. Nil-safe: a nil archive skips uploads.
type R2Archive struct {
	client *s3.Client
	bucket string
}

// NewR2Archive returns nil when no bucket is configured; callers treat that as
// archiving disabled.
func NewR2Archive(cfg *appconfig.Config) *R2Archive {
	if cfg.R2.Bucket == "" {
		log.Printf("[Storage] R2 bucket not configured, report archiving disabled")
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2.AccessKey,
			cfg.R2.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.R2.Region),
	)
	if err != nil {
		log.Printf("[Storage] Failed to configure R2 client: %v", err)
		return nil
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2.Endpoint)
	})

	return &R2Archive{client: client, bucket: cfg.R2.Bucket}
}

// Upload stores the PDF under reports/<date>/<name> and returns the object key.
func (a *R2Archive) Upload(ctx context.Context, name string, pdf []byte) (string, error) {
	if a == nil {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	key := fmt.Sprintf("reports/%s/%s", time.Now().Format("2006-01-02"), name)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report to R2: %w", err)
	}
	return key, nil
}
