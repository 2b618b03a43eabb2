package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/agenda-sync/internal/config"
)

// ObjectStore persists advance-payment proof images.
type ObjectStore interface {
	PutProof(ctx context.Context, barbershopID, appointmentID uint, body []byte) (string, error)
}

// S3Store writes proofs to a bucket keyed by shop and appointment.
type S3Store struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Store(cfg *config.Config) *S3Store {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	})
	return &S3Store{
		client: client,
		bucket: cfg.S3Bucket,
		region: cfg.S3Region,
	}
}

func (s *S3Store) PutProof(ctx context.Context, barbershopID, appointmentID uint, body []byte) (string, error) {
	key := fmt.Sprintf("proofs/%d/%d.webp", barbershopID, appointmentID)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
