package blob

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samudev/portfolio-backend/errs"
	"github.com/samudev/portfolio-backend/models"
)

// S3Config carries the connection settings for the media bucket. BaseEndpoint
// supports S3-compatible stores (MinIO, Supabase storage gateways).
type S3Config struct {
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	// PublicBaseURL is the address media resolves at, e.g. a CDN or the
	// bucket's public endpoint. Keys are appended directly.
	PublicBaseURL string
	// Timeout bounds each individual call. Zero means 30s.
	Timeout time.Duration
}

// S3Store implements Store on any S3-compatible bucket.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
	timeout time.Duration
	logger  zerolog.Logger
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		timeout: timeout,
		logger:  log.With().Str("component", "s3store").Logger(),
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, ownerID string, file File, kind models.MediaKind) (string, error) {
	key := ObjectKey(ownerID, kind, file.Name, time.Now())

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   file.Content,
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}

	if _, err := s.client.PutObject(callCtx, input); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Upload failed")
		return "", classifyUploadError(key, err)
	}

	url := s.PublicURL(key)
	s.logger.Info().Str("key", key).Str("url", url).Msg("Uploaded media object")
	return url, nil
}

func (s *S3Store) Delete(ctx context.Context, path string) error {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.DeleteObject(callCtx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", path).Msg("Delete failed")
		return classifyUploadError(path, err)
	}
	return nil
}

func (s *S3Store) List(ctx context.Context, ownerID string, kind models.MediaKind) ([]Entry, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prefix := KeyPrefix(ownerID, kind)
	var entries []Entry

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(callCtx)
		if err != nil {
			return nil, classifyUploadError(prefix, err)
		}
		for _, object := range page.Contents {
			entry := Entry{Path: aws.ToString(object.Key)}
			if object.Size != nil {
				entry.Size = *object.Size
			}
			if object.LastModified != nil {
				entry.LastModified = *object.LastModified
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// PublicURL resolves a storage key to its public address.
func (s *S3Store) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

// classifyUploadError maps transport and service failures onto the upload
// error taxonomy. Timeouts count as network failures.
func classifyUploadError(path string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.NewUploadNetworkError(path, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return errs.NewUploadRejectedError(path, err)
	}

	return errs.NewUploadUnknownError(path, err)
}
