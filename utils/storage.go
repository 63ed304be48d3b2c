package utils

import (
	"bytes"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/config"
)

// ObjectStore uploads profile images and application documents to S3.
// Object keys follow the {userId}/{filename} convention.
type ObjectStore struct {
	client        *s3.S3
	bucket        string
	publicBaseURL string
}

func NewObjectStore(cfg *config.Config) (*ObjectStore, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.S3Region)}
	if cfg.S3AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	base := cfg.S3PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &ObjectStore{
		client:        s3.New(sess),
		bucket:        cfg.S3Bucket,
		publicBaseURL: base,
	}, nil
}

// Upload stores the object under {userID}/{filename} and returns its public URL.
func (s *ObjectStore) Upload(userID uint, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("%d/%s", userID, path.Base(filename))

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.publicBaseURL, key), nil
}

// Delete removes an object by its {userID}/{filename} key.
func (s *ObjectStore) Delete(userID uint, filename string) error {
	key := fmt.Sprintf("%d/%s", userID, path.Base(filename))
	_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
