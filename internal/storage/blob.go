package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// BlobStore keeps test result documents and returns where they can be found.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// ResultKey is the object key of a test result document.
func ResultKey(userID, testID uint64, filename string) string {
	return fmt.Sprintf("tests/%d/%d/%s%s", userID, testID, uuid.NewString(), strings.ToLower(path.Ext(filename)))
}

type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Store uses the default AWS credential chain. A non-empty endpoint
// switches to path-style addressing for S3-compatible servers.
func NewS3Store(ctx context.Context, bucket, endpoint, publicURL string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Store{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *S3Store) URL(key string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}
	return "s3://" + s.bucket + "/" + key
}
