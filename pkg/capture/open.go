package capture

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/bardasz/etp/pkg/etperr"
)

// Open returns a recorder for target: "s3://bucket/prefix" uploads to S3,
// anything else is a local file path.
//
// The S3 client reads AWS_REGION (or AWS_DEFAULT_REGION), AWS_ACCESS_KEY_ID,
// AWS_SECRET_ACCESS_KEY, AWS_SESSION_TOKEN and, for S3-compatible stores,
// AWS_ENDPOINT_URL_S3.
func Open(ctx context.Context, target string) (Recorder, error) {
	if !strings.HasPrefix(target, "s3://") {
		return NewFileRecorder(target)
	}

	bucket, prefix, err := ParseS3Target(target)
	if err != nil {
		return nil, err
	}
	rec := NewS3Recorder(NewS3ClientFromEnv(), bucket, prefix)
	rec.ctx = context.WithoutCancel(ctx)
	return rec, nil
}

// ParseS3Target splits s3://bucket/prefix into bucket and key prefix.
func ParseS3Target(target string) (string, string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", "", etperr.New("E401").WithDetailf("capture target %q", target).Wrap(err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", etperr.New("E401").WithDetailf("capture target %q: want s3://bucket/prefix", target)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// defaultRegion is used when neither AWS_REGION nor AWS_DEFAULT_REGION is set.
// S3-compatible stores reached through AWS_ENDPOINT_URL_S3 ignore it.
const defaultRegion = "us-east-1"

func regionFromEnv() string {
	for _, name := range []string{"AWS_REGION", "AWS_DEFAULT_REGION"} {
		if r := os.Getenv(name); r != "" {
			return r
		}
	}
	return defaultRegion
}

// NewS3ClientFromEnv builds an S3 client from the standard AWS environment
// variables. Shared profiles and instance roles are not consulted.
func NewS3ClientFromEnv() *s3.Client {
	cfg := aws.Config{
		Region: regionFromEnv(),
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
					SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
					SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
					Source:          "environment",
				}, nil
			},
		)),
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if ep := os.Getenv("AWS_ENDPOINT_URL_S3"); ep != "" {
			o.BaseEndpoint = aws.String(ep)
			o.UsePathStyle = true
		}
	})
}
