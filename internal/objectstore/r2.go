package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/MKhiriev/go-identity-portal/internal/config"
)

// r2Region is the region R2 expects in signatures.
const r2Region = "auto"

// unsignedPayload lets the browser upload any body under the signed headers.
const unsignedPayload = "UNSIGNED-PAYLOAD"

type r2Store struct {
	client      *s3.Client
	signer      *v4.Signer
	credentials aws.CredentialsProvider
	endpoint    string
	bucket      string
	now         func() time.Time
}

// NewR2Store creates an [ObjectStore] for the configured R2 bucket. The
// endpoint defaults to the account endpoint and always uses https.
func NewR2Store(ctx context.Context, cfg config.Uploads) (ObjectStore, error) {
	return newR2Store(ctx, cfg, cfg.ResolvedEndpoint())
}

func newR2Store(ctx context.Context, cfg config.Uploads, endpoint string) (*r2Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(r2Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load object storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &r2Store{
		client:      client,
		signer:      v4.NewSigner(),
		credentials: awsCfg.Credentials,
		endpoint:    endpoint,
		bucket:      cfg.BucketName,
		now:         time.Now,
	}, nil
}

// PresignPut signs a path-style PUT URL. Content-Type is part of the
// signature, so the upload must send exactly contentType.
func (s *r2Store) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	target, err := url.JoinPath(s.endpoint, s.bucket, key)
	if err != nil {
		return "", fmt.Errorf("build object url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, nil)
	if err != nil {
		return "", fmt.Errorf("build presign request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	q := req.URL.Query()
	q.Set("X-Amz-Expires", strconv.FormatInt(int64(ttl/time.Second), 10))
	req.URL.RawQuery = q.Encode()

	creds, err := s.credentials.Retrieve(ctx)
	if err != nil {
		return "", fmt.Errorf("retrieve object storage credentials: %w", err)
	}

	signed, _, err := s.signer.PresignHTTP(ctx, creds, req, unsignedPayload, "s3", r2Region, s.now().UTC())
	if err != nil {
		return "", fmt.Errorf("presign put object: %w", err)
	}
	return signed, nil
}

func (s *r2Store) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (s *r2Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}
