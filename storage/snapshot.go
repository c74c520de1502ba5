package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// snapshotName builds "<site>/<timestamp>_<query-slug>_<id>.html"
func snapshotName(site, query string, now time.Time) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(query), "-"), "-")
	if slug == "" {
		slug = "query"
	}
	if len(slug) > 60 {
		slug = slug[:60]
	}
	return fmt.Sprintf("%s/%s_%s_%s.html", site, now.UTC().Format("20060102T150405"), slug, uuid.New().String()[:8])
}

// LocalSnapshots writes fetched pages under Dir
type LocalSnapshots struct {
	Dir string
}

// Save writes body to a new file named after the site and query
func (s *LocalSnapshots) Save(ctx context.Context, site, query string, body []byte) error {
	path := filepath.Join(s.Dir, filepath.FromSlash(snapshotName(site, query, time.Now())))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, body, 0644)
}

// PutObjectAPI is the part of the S3 client snapshots need
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Snapshots uploads fetched pages to a bucket under Prefix
type S3Snapshots struct {
	Client PutObjectAPI
	Bucket string
	Prefix string
}

// NewS3Snapshots creates an S3Snapshots using the default AWS credential chain
func NewS3Snapshots(ctx context.Context, region, bucket string) (*S3Snapshots, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &S3Snapshots{
		Client: s3.NewFromConfig(cfg),
		Bucket: bucket,
		Prefix: "snapshots",
	}, nil
}

// Save uploads body as an HTML object
func (s *S3Snapshots) Save(ctx context.Context, site, query string, body []byte) error {
	key := snapshotName(site, query, time.Now())
	if s.Prefix != "" {
		key = s.Prefix + "/" + key
	}

	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot to S3: %w", err)
	}
	return nil
}
