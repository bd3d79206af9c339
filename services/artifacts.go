package services

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"easyapply/models"
)

// ArtifactSink captures debug evidence for a failed application. The
// driver and orchestrator never persist anything themselves; failures
// flow through here.
type ArtifactSink interface {
	SaveFailure(jobID string, result models.ApplicationResult, screenshot []byte) error
}

// S3ArtifactSink uploads a failure screenshot and a metadata record to
// one S3 prefix per job.
type S3ArtifactSink struct {
	client *s3.S3
	bucket string
	prefix string
}

func NewS3ArtifactSink(region, bucket, prefix string) (*S3ArtifactSink, error) {
	if bucket == "" {
		return nil, fmt.Errorf("artifact bucket is empty")
	}
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return &S3ArtifactSink{client: s3.New(sess), bucket: bucket, prefix: prefix}, nil
}

// SaveFailure uploads the screenshot under
// <prefix>/<jobID>/<timestamp>.png. Metadata upload failures are logged
// but do not fail the capture; the screenshot is the valuable part.
func (s *S3ArtifactSink) SaveFailure(jobID string, result models.ApplicationResult, screenshot []byte) error {
	stamp := time.Now().UTC().Format("20060102-150405")
	key := fmt.Sprintf("%s/%s/%s.png", s.prefix, jobID, stamp)

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(screenshot),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return fmt.Errorf("upload screenshot to s3://%s/%s: %w", s.bucket, key, err)
	}

	meta := []byte(fmt.Sprintf("%+v\n", result))
	metaKey := fmt.Sprintf("%s/%s/%s.txt", s.prefix, jobID, stamp)
	if _, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(metaKey),
		Body:        bytes.NewReader(meta),
		ContentType: aws.String("text/plain"),
	}); err != nil {
		log.Printf("Failed to upload failure metadata: %v", err)
	}

	log.Printf("Failure artifacts saved to s3://%s/%s", s.bucket, key)
	return nil
}
