package blob

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"liyu1981.xyz/bp-report-service/pkg/models"
)

// S3API is the subset of *s3.Client the store calls.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	Client S3API
	Bucket string
}

func NewS3Store(client S3API, bucket string) *S3Store {
	return &S3Store{Client: client, Bucket: bucket}
}

func (s *S3Store) PutObject(ctx context.Context, key string, body []byte) (models.StorageLocation, error) {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(ContentTypeText),
	})
	if err != nil {
		return models.StorageLocation{}, fmt.Errorf("put s3://%s/%s: %w", s.Bucket, key, err)
	}
	return models.StorageLocation{Bucket: s.Bucket, Key: key}, nil
}
