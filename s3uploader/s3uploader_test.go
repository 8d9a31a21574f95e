package s3uploader_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosom/google-maps-menu-scraper/s3uploader"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params

	b, _ := io.ReadAll(params.Body)
	f.body = string(b)

	if f.err != nil {
		return nil, f.err
	}

	return &s3.PutObjectOutput{}, nil
}

func TestUpload(t *testing.T) {
	client := &fakePutter{}
	u := s3uploader.NewWithClient(client)

	err := u.Upload(context.Background(), "debug-bucket", "diagnostics/abc.png", strings.NewReader("png"))
	require.NoError(t, err)

	assert.Equal(t, "debug-bucket", aws.ToString(client.input.Bucket))
	assert.Equal(t, "diagnostics/abc.png", aws.ToString(client.input.Key))
	assert.Equal(t, "image/png", aws.ToString(client.input.ContentType))
	assert.Equal(t, "png", client.body)
}

func TestUpload_Error(t *testing.T) {
	boom := errors.New("access denied")
	u := s3uploader.NewWithClient(&fakePutter{err: boom})

	err := u.Upload(context.Background(), "b", "k", strings.NewReader(""))

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "s3://b/k")
}
