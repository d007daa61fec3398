// Package export ships cluster installation logs to object storage.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/aic/aic/internal/client"
	"github.com/aic/aic/internal/dao"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrNoBucket is returned when no destination bucket is configured.
	ErrNoBucket = errors.New("no export bucket configured")

	// ErrAccessDenied is returned when the bucket rejects the upload.
	ErrAccessDenied = errors.New("access denied")
)

// Uploader is the subset of the S3 API the exporter needs.
type Uploader interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config locates the destination bucket.
type Config struct {
	Bucket  string
	Prefix  string
	Region  string
	Profile string
	Timeout time.Duration
}

// NewS3Client loads the shared AWS configuration for cfg.
func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	opts := make([]func(*config.LoadOptions) error, 0, 2)
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, WrapS3Error(err, "load AWS config")
	}

	return s3.NewFromConfig(awsCfg), nil
}

// LogExporter downloads a cluster log bundle and uploads it to a bucket.
type LogExporter struct {
	conn   client.Connection
	s3     Uploader
	bucket string
	prefix string
	now    func() time.Time
}

// NewLogExporter returns an exporter writing under cfg.Bucket/cfg.Prefix.
func NewLogExporter(conn client.Connection, up Uploader, cfg Config) (*LogExporter, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}
	return &LogExporter{
		conn:   conn,
		s3:     up,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		now:    time.Now,
	}, nil
}

// Key returns the object key of a bundle taken at t.
func Key(prefix string, c *dao.Cluster, t time.Time) string {
	return path.Join(prefix, c.Name+"-"+c.ID, t.UTC().Format("20060102T150405Z")+".tar")
}

// Export uploads the logs of c and returns the object key. The bundle is
// spooled to a temporary file so the upload body is seekable.
func (e *LogExporter) Export(ctx context.Context, c *dao.Cluster) (string, error) {
	rc, err := e.conn.DownloadLogs(ctx, c.ID)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	f, err := os.CreateTemp("", "aic-logs-*.tar")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(f.Name())
	}()

	n, err := io.Copy(f, rc)
	if err != nil {
		return "", fmt.Errorf("download logs of %s: %w", c.Name, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	key := Key(e.prefix, c, e.now())
	_, err = e.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/x-tar"),
	})
	if err != nil {
		return "", WrapS3Error(err, "upload "+key)
	}
	log.WithFields(log.Fields{"cluster": c.ID, "bucket": e.bucket, "bytes": n}).Infof("logs exported to %s", key)

	return key, nil
}

// WrapS3Error wraps AWS SDK errors with the failing operation.
func WrapS3Error(err error, operation string) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "AccessDeniedException", "InvalidAccessKeyId":
			return fmt.Errorf("%w for %s: %w", ErrAccessDenied, operation, err)
		case "NoSuchBucket":
			return fmt.Errorf("%s: bucket does not exist: %w", operation, err)
		default:
			return fmt.Errorf("%s failed: %s (%s)", operation, apiErr.ErrorMessage(), apiErr.ErrorCode())
		}
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
