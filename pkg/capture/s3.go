package capture

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3API is the part of *s3.Client the recorder uses.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// uploadTimeout bounds the PutObject issued by Close.
const uploadTimeout = 30 * time.Second

// S3Recorder buffers a transcript in memory and uploads it as a single
// object when closed.
type S3Recorder struct {
	client S3API
	bucket string
	key    string
	ctx    context.Context

	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

// NewS3Recorder creates a recorder writing to <prefix><uuid>.jsonl in bucket.
func NewS3Recorder(client S3API, bucket, prefix string) *S3Recorder {
	return &S3Recorder{
		client: client,
		bucket: bucket,
		key:    prefix + uuid.NewString() + ".jsonl",
		ctx:    context.Background(),
	}
}

// Key returns the object key the transcript is uploaded to.
func (r *S3Recorder) Key() string {
	return r.key
}

// Record buffers one entry.
func (r *S3Recorder) Record(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return os.ErrClosed
	}
	return encode(&r.buf, e)
}

// Close uploads the transcript. Further calls are no-ops.
func (r *S3Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	ctx, cancel := context.WithTimeout(r.ctx, uploadTimeout)
	defer cancel()

	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key),
		Body:        bytes.NewReader(r.buf.Bytes()),
		ContentType: aws.String("application/x-ndjson"),
		Metadata: map[string]string{
			"capture-time": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("s3 upload failed: %w", err)
	}
	return nil
}
