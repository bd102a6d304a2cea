package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// ImageStore saves listing images either to an S3-compatible bucket or
// to a local upload directory, depending on configuration.
type ImageStore struct {
	UploadDir string

	S3Enabled  bool
	S3Bucket   string
	S3Region   string
	S3Endpoint string
	s3Client   *s3.S3
}

func NewImageStore(uploadDir string, s3Enabled bool, accessKey, secretKey, bucket, region, endpoint string) *ImageStore {
	store := &ImageStore{
		UploadDir:  uploadDir,
		S3Enabled:  s3Enabled,
		S3Bucket:   bucket,
		S3Region:   region,
		S3Endpoint: endpoint,
	}
	if s3Enabled {
		sess := session.Must(session.NewSession(&aws.Config{
			Region:      aws.String(region),
			Endpoint:    aws.String(endpoint),
			Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
		}))
		store.s3Client = s3.New(sess)
	}
	return store
}

// NewImageName produces a collision-free file name preserving the
// original extension.
func NewImageName(originalName string) string {
	return uuid.New().String() + filepath.Ext(originalName)
}

// Save stores the image bytes under folder/fileName and returns the
// public path or URL.
func (s *ImageStore) Save(file []byte, fileName, folder string) (string, error) {
	if s.S3Enabled {
		return s.saveToS3(file, fileName, folder)
	}
	return s.saveLocal(file, fileName, folder)
}

func (s *ImageStore) saveToS3(file []byte, fileName, folder string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.S3Bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String("image/jpeg"),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.S3Endpoint, s.S3Bucket, filePath), nil
}

func (s *ImageStore) saveLocal(file []byte, fileName, folder string) (string, error) {
	dir := filepath.Join(s.UploadDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create upload dir: %v", err)
	}

	fullPath := filepath.Join(dir, fileName)
	if err := os.WriteFile(fullPath, file, 0o644); err != nil {
		return "", fmt.Errorf("unable to write file: %v", err)
	}

	return "/" + filepath.ToSlash(filepath.Join("uploads", folder, fileName)), nil
}
