package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aic/aic/internal/client"
	"github.com/aic/aic/internal/dao"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logsConn struct {
	client.Connection
	body string
	err  error
}

func (c logsConn) DownloadLogs(context.Context, string) (io.ReadCloser, error) {
	if c.err != nil {
		return nil, c.err
	}
	return io.NopCloser(strings.NewReader(c.body)), nil
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, in.Body); err != nil {
		return nil, err
	}
	f.body = buf.Bytes()
	return &s3.PutObjectOutput{}, nil
}

var cluster = &dao.Cluster{BaseObject: dao.BaseObject{ID: "5a6b1c8e-7a5c-4c69-9d4b-000000000001", Name: "prod"}}

func TestExport(t *testing.T) {
	up := new(fakeS3)
	e, err := NewLogExporter(logsConn{body: "tarball"}, up, Config{Bucket: "logs", Prefix: "aic"})
	require.NoError(t, err)
	e.now = func() time.Time { return time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC) }

	key, err := e.Export(context.Background(), cluster)
	require.NoError(t, err)
	assert.Equal(t, "aic/prod-5a6b1c8e-7a5c-4c69-9d4b-000000000001/20240301T102030Z.tar", key)
	assert.Equal(t, "logs", aws.ToString(up.in.Bucket))
	assert.Equal(t, "application/x-tar", aws.ToString(up.in.ContentType))
	assert.Equal(t, "tarball", string(up.body))
}

func TestExportNoBucket(t *testing.T) {
	_, err := NewLogExporter(logsConn{}, new(fakeS3), Config{})
	assert.ErrorIs(t, err, ErrNoBucket)
}

func TestExportDownloadFails(t *testing.T) {
	up := new(fakeS3)
	e, err := NewLogExporter(logsConn{err: client.ErrNotFound}, up, Config{Bucket: "logs"})
	require.NoError(t, err)

	_, err = e.Export(context.Background(), cluster)
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Nil(t, up.in)
}

func TestExportAccessDenied(t *testing.T) {
	up := &fakeS3{err: &smithy.GenericAPIError{Code: "AccessDenied", Message: "nope"}}
	e, err := NewLogExporter(logsConn{body: "x"}, up, Config{Bucket: "logs"})
	require.NoError(t, err)

	_, err = e.Export(context.Background(), cluster)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestWrapS3Error(t *testing.T) {
	assert.NoError(t, WrapS3Error(nil, "op"))

	err := WrapS3Error(&smithy.GenericAPIError{Code: "SlowDown", Message: "later"}, "upload")
	assert.EqualError(t, err, "upload failed: later (SlowDown)")

	err = WrapS3Error(errors.New("dial"), "upload")
	assert.EqualError(t, err, "upload failed: dial")
}
