package enum

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// fakeS3 lists two objects per page.
type fakeS3 struct {
	keys    []string
	objects map[string]string
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	start := 0
	if in.ContinuationToken != nil {
		for i, k := range f.keys {
			if k == *in.ContinuationToken {
				start = i
			}
		}
	}
	end := min(start+2, len(f.keys))

	out := &s3.ListObjectsV2Output{}
	for _, k := range f.keys[start:end] {
		if in.Prefix != nil && !strings.HasPrefix(k, *in.Prefix) {
			continue
		}
		out.Contents = append(out.Contents, s3types.Object{
			Key:  aws.String(k),
			Size: aws.Int64(int64(len(f.objects[k]))),
			ETag: aws.String(`"etag-` + k + `"`),
		})
	}
	if end < len(f.keys) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(f.keys[end])
	}
	return out, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	content, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(content))}, nil
}

func TestS3Enumerator(t *testing.T) {
	fake := &fakeS3{
		keys: []string{"a/index.html", "a/app.css", "b/page.htm", "b/deleted.html", "c/doc.txt"},
		objects: map[string]string{
			"a/index.html": "<!DOCTYPE html>",
			"a/app.css":    "p {}",
			"b/page.htm":   "<p>",
			"c/doc.txt":    "<html><body>",
		},
	}

	e := &S3Enumerator{client: fake, config: S3Config{Bucket: "site", Config: Config{SniffContent: true}}}

	c := newCollector()
	require.NoError(t, e.Enumerate(context.Background(), c.callback(t)))
	assert.Equal(t, []string{"site/a/index.html", "site/b/page.htm", "site/c/doc.txt"}, c.sorted())

	for _, p := range c.provs {
		prov := p.(types.RemoteProvenance)
		assert.Equal(t, "s3", prov.Kind())
		assert.Equal(t, "s3://site/"+prov.ObjectPath, prov.URL)
		assert.NotEmpty(t, prov.Revision)
	}
}

func TestS3Enumerator_Prefix(t *testing.T) {
	fake := &fakeS3{
		keys:    []string{"a/index.html", "b/index.html"},
		objects: map[string]string{"a/index.html": "<p>a", "b/index.html": "<p>b"},
	}
	e := &S3Enumerator{client: fake, config: S3Config{Bucket: "site", Prefix: "b/"}}

	c := newCollector()
	require.NoError(t, e.Enumerate(context.Background(), c.callback(t)))
	assert.Equal(t, []string{"site/b/index.html"}, c.paths)
}

func TestNewS3Enumerator_RequiresBucket(t *testing.T) {
	_, err := NewS3Enumerator(context.Background(), S3Config{})
	assert.ErrorContains(t, err, "bucket is required")
}
