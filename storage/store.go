package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

var (
	ErrStorageUnavailable = errors.New("object storage unavailable")
	ErrDownloadFailed     = errors.New("failed to download objects")
)

type Object struct {
	Key  string
	Size int64
}

type Page struct {
	Objects   []Object
	Truncated bool
	NextToken string
}

// ObjectStore is the narrow blob-store contract the service needs: uploads,
// public-read ACLs, streamed reads and one page of a prefix listing.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType, cacheControl string) error
	SetPublicRead(ctx context.Context, key string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	ListPage(ctx context.Context, prefix, continuationToken string) (Page, error)
}

type S3Store struct {
	client *s3.S3
	bucket string
}

func NewS3Store() (*S3Store, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, errors.New("S3_BUCKET is not set")
	}

	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "us-east-1"
	}

	cfg := aws.NewConfig().WithRegion(region)
	if endpoint := os.Getenv("S3_ENDPOINT"); endpoint != "" {
		cfg = cfg.WithEndpoint(endpoint).WithS3ForcePathStyle(true)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Store{client: s3.New(sess), bucket: bucket}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType, cacheControl string) error {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrStorageUnavailable, key, err)
	}
	return nil
}

func (s *S3Store) SetPublicRead(ctx context.Context, key string) error {
	_, err := s.client.PutObjectAclWithContext(ctx, &s3.PutObjectAclInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		ACL:    aws.String(s3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return fmt.Errorf("%w: set acl %s: %v", ErrStorageUnavailable, key, err)
	}
	return nil
}

func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrStorageUnavailable, key, err)
	}
	return out.Body, nil
}

func (s *S3Store) ListPage(ctx context.Context, prefix, continuationToken string) (Page, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}
	if continuationToken != "" {
		input.ContinuationToken = aws.String(continuationToken)
	}

	out, err := s.client.ListObjectsV2WithContext(ctx, input)
	if err != nil {
		return Page{}, fmt.Errorf("%w: list %s: %v", ErrStorageUnavailable, prefix, err)
	}

	page := Page{
		Truncated: aws.BoolValue(out.IsTruncated),
		NextToken: aws.StringValue(out.NextContinuationToken),
	}
	for _, obj := range out.Contents {
		page.Objects = append(page.Objects, Object{
			Key:  aws.StringValue(obj.Key),
			Size: aws.Int64Value(obj.Size),
		})
	}
	return page, nil
}
