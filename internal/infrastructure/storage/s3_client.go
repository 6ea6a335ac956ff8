package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	store "github.com/ayes009/photoshare-webapp/internal/adapter/storage"
	"github.com/ayes009/photoshare-webapp/internal/domain"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/config"
)

// S3Storage is a single bucket. The photos and metadata containers are two
// instances sharing one client.
type S3Storage struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucket     string
	publicURL  string
	presignTTL time.Duration
}

func NewS3Client(cfg config.S3Config) *s3.Client {
	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	return s3.New(s3.Options{}, opts...)
}

func NewS3Storage(client *s3.Client, bucket, publicURL string, presignTTL time.Duration) *S3Storage {
	return &S3Storage{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucket:     bucket,
		publicURL:  strings.TrimRight(publicURL, "/"),
		presignTTL: presignTTL,
	}
}

func (s *S3Storage) List(ctx context.Context) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, translateError(err, "listing objects")
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	return keys, nil
}

func (s *S3Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		err = translateError(err, "checking object")
		if errors.Is(err, domain.ErrBlobNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *S3Storage) Download(ctx context.Context, key string) (*store.Blob, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, translateError(err, "downloading from s3")
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading s3 object body: %w", err)
	}

	return &store.Blob{
		Key:         key,
		ContentType: aws.ToString(out.ContentType),
		ETag:        aws.ToString(out.ETag),
		Data:        data,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error) {
	return s.put(ctx, key, reader, contentType, size, nil)
}

func (s *S3Storage) UploadIfMatch(ctx context.Context, key string, reader io.Reader, contentType string, size int64, etag string) (string, error) {
	return s.put(ctx, key, reader, contentType, size, aws.String(etag))
}

func (s *S3Storage) put(ctx context.Context, key string, reader io.Reader, contentType string, size int64, ifMatch *string) (string, error) {
	// The SDK signs the payload, which needs a seekable body.
	if _, ok := reader.(io.Seeker); !ok {
		data, err := io.ReadAll(reader)
		if err != nil {
			return "", fmt.Errorf("buffering upload body: %w", err)
		}
		reader = bytes.NewReader(data)
		size = int64(len(data))
	}

	out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		IfMatch:       ifMatch,
	})
	if err != nil {
		return "", translateError(err, "uploading to s3")
	}
	return aws.ToString(out.ETag), nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return translateError(err, "deleting from s3")
	}
	return nil
}

// GetURL returns a public URL when S3_PUBLIC_URL is configured, otherwise a
// presigned GET URL whose query string carries the access token.
func (s *S3Storage) GetURL(ctx context.Context, key string) (string, error) {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, url.PathEscape(key)), nil
	}

	presignResult, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.presignTTL
	})
	if err != nil {
		return "", fmt.Errorf("generating presigned url: %w", err)
	}
	return presignResult.URL, nil
}

func translateError(err error, op string) error {
	var (
		noSuchKey    *types.NoSuchKey
		notFound     *types.NotFound
		noSuchBucket *types.NoSuchBucket
	)
	switch {
	case errors.As(err, &noSuchKey), errors.As(err, &notFound):
		return fmt.Errorf("%s: %w", op, domain.ErrBlobNotFound)
	case errors.As(err, &noSuchBucket):
		return fmt.Errorf("%s: %w", op, domain.ErrContainerNotFound)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "PreconditionFailed", "ConditionalRequestConflict":
			return fmt.Errorf("%s: %w", op, domain.ErrPreconditionFailed)
		case "NoSuchBucket":
			return fmt.Errorf("%s: %w", op, domain.ErrContainerNotFound)
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%s: %w", op, domain.ErrBlobNotFound)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
