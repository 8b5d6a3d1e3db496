package enum

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// S3Config configures enumeration of an S3 bucket. Credentials come from the
// AWS default chain unless AccessKeyID and SecretAccessKey are set.
type S3Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string // S3-compatible endpoint; enables path-style addressing
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Config
}

type s3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Enumerator enumerates HTML objects of one bucket.
type S3Enumerator struct {
	client s3API
	config S3Config
}

// NewS3Enumerator loads the AWS configuration and creates the S3 client.
func NewS3Enumerator(ctx context.Context, cfg S3Config) (*S3Enumerator, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Enumerator{client: client, config: cfg}, nil
}

// Enumerate pages through ListObjectsV2 and fetches HTML objects.
func (e *S3Enumerator) Enumerate(ctx context.Context, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error {
	log := e.config.logger()

	input := &s3.ListObjectsV2Input{Bucket: aws.String(e.config.Bucket)}
	if e.config.Prefix != "" {
		input.Prefix = aws.String(e.config.Prefix)
	}
	pages := s3.NewListObjectsV2Paginator(e.client, input)

	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("listing bucket %s: %w", e.config.Bucket, err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == "" || e.config.tooLarge(aws.ToInt64(obj.Size)) {
				continue
			}
			if !HasHTMLExtension(key) && !e.config.SniffContent {
				continue
			}

			content, err := e.get(ctx, key)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warn("skipping unreadable object", "bucket", e.config.Bucket, "key", key, "error", err)
				continue
			}
			if !e.config.IsHTML(key, content) {
				continue
			}

			prov := types.RemoteProvenance{
				Provider:   "s3",
				Container:  e.config.Bucket,
				ObjectPath: key,
				Revision:   aws.ToString(obj.ETag),
				URL:        fmt.Sprintf("s3://%s/%s", e.config.Bucket, key),
			}
			if err := callback(content, types.ComputeBlobID(content), prov); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *S3Enumerator) get(ctx context.Context, key string) ([]byte, error) {
	out, err := e.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(e.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}
