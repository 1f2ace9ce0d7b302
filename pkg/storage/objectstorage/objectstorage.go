// Package objectstorage adapts the external object store holding uploaded
// media. Only deletion is needed here: uploads happen in the media upload
// path, which is not part of this repository.
package objectstorage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pulsefeed/post-events/pkg/logging"
)

// Deleter removes an object from external storage by its public id.
type Deleter interface {
	Delete(ctx context.Context, publicId string) error
}

var _ Deleter = (*S3)(nil)

// S3 deletes media objects from any S3-compatible backend
// (AWS S3, MinIO, ...).
type S3 struct {
	client *s3.Client
	bucket string
	logger logging.Logger
}

type Config struct {
	Endpoint  string // Empty means the default AWS endpoint.
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

func NewS3(ctx context.Context, config Config, logger logging.Logger) (*S3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(config.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(config.AccessKey, config.SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{
		client: client,
		bucket: config.Bucket,
		logger: logger,
	}, nil
}

func (s *S3) Delete(ctx context.Context, publicId string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicId),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %q from bucket %q: %w", publicId, s.bucket, err)
	}

	s.logger.Log(ctx, "Deleted object from external storage", "publicId", publicId)
	return nil
}
