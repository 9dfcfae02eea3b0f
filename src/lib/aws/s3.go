package aws

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

func GetS3Client() *s3.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil
	}
	return s3.NewFromConfig(cfg)
}

// S3Storage keeps media in one bucket. With PublicURL set, URLs are
// PublicURL/key; otherwise they are presigned GETs valid for Expiry.
type S3Storage struct {
	Bucket    string
	PublicURL string
	Expiry    time.Duration
	// WaitTimeout bounds the wait for an uploaded object to become visible.
	WaitTimeout time.Duration

	client    S3Client
	presigner S3Presigner
}

func NewS3Storage(client S3Client, presigner S3Presigner, bucket string, publicURL string, expiry time.Duration) *S3Storage {
	return &S3Storage{
		Bucket:      bucket,
		PublicURL:   strings.TrimSuffix(publicURL, "/"),
		Expiry:      expiry,
		WaitTimeout: time.Minute,
		client:      client,
		presigner:   presigner,
	}
}

// NewS3StorageFromEnv uses the default AWS credential chain.
func NewS3StorageFromEnv(bucket string, publicURL string, expiry time.Duration) *S3Storage {
	client := GetS3Client()
	if client == nil {
		return nil
	}
	return NewS3Storage(client, s3.NewPresignClient(client), bucket, publicURL, expiry)
}

func (s *S3Storage) Save(ctx context.Context, key string, r io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Could not put object to S3 bucket: %s\n", err.Error())
		return err
	}
	err = s3.NewObjectExistsWaiter(s.client).Wait(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}, s.WaitTimeout)
	if err != nil {
		log.Printf("Failed attempt to wait for object %s to exist: %s\n", key, err.Error())
		return err
	}
	log.Printf("Added object '%s' to bucket '%s'", key, s.Bucket)
	return nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) URL(ctx context.Context, key string) (string, error) {
	if s.PublicURL != "" {
		return s.PublicURL + "/" + strings.TrimPrefix(key, "/"), nil
	}
	r, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}, func(po *s3.PresignOptions) {
		po.Expires = s.Expiry
	})
	if err != nil {
		log.Printf("Could not generate presigned URL for object [%s]: %s\n", key, err.Error())
		return "", err
	}
	return r.URL, nil
}
