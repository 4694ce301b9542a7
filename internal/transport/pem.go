package transport

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/objectfs/posixfs/internal/config"
)

// maxPEMSize bounds what is read from a single PEM source.
const maxPEMSize = 1 << 20

// ObjectGetter is the part of the S3 API the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// PEMLoader reads PEM material from local files or s3://bucket/key URIs.
// The S3 client is only built when the first s3:// source is seen.
type PEMLoader struct {
	s3cfg config.S3Config

	once   sync.Once
	client ObjectGetter
	err    error
}

// NewPEMLoader returns a loader using cfg for s3:// sources.
func NewPEMLoader(cfg config.S3Config) *PEMLoader {
	return &PEMLoader{s3cfg: cfg}
}

// NewPEMLoaderWithClient returns a loader that fetches s3:// sources through
// client.
func NewPEMLoaderWithClient(client ObjectGetter) *PEMLoader {
	l := &PEMLoader{client: client}
	l.once.Do(func() {})
	return l
}

// Load returns the contents of source. The empty source yields nil.
func (l *PEMLoader) Load(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		return nil, nil
	}

	if !strings.HasPrefix(source, "s3://") {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source, err)
		}
		return data, nil
	}

	bucket, key, err := parseS3URI(source)
	if err != nil {
		return nil, err
	}

	client, err := l.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", source, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxPEMSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	if len(data) > maxPEMSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", source, maxPEMSize)
	}
	return data, nil
}

func (l *PEMLoader) s3Client(ctx context.Context) (ObjectGetter, error) {
	l.once.Do(func() {
		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(l.s3cfg.Region),
		}
		if l.s3cfg.AccessKeyID != "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(l.s3cfg.AccessKeyID, l.s3cfg.SecretAccessKey, ""),
			))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			l.err = fmt.Errorf("failed to load AWS config: %w", err)
			return
		}

		l.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if l.s3cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(l.s3cfg.Endpoint)
			}
			if l.s3cfg.ForcePathStyle {
				o.UsePathStyle = true
			}
		})
	})
	return l.client, l.err
}

func parseS3URI(source string) (bucket, key string, err error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 URI %q: %w", source, err)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 URI %q: want s3://bucket/key", source)
	}
	return bucket, key, nil
}
