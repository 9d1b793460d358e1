// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cappeLindo/webcars-api/internal/config"
)

// StorageService abstracts listing-image storage. With AWS credentials
// configured it writes to S3; otherwise it falls back to the local
// filesystem so cascade deletes still remove real artifacts.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type StoredObject struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Local filesystem storage for development
		if err := os.MkdirAll(filepath.Join(cfg.Storage.LocalPath, "cars"), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
		return &StorageService{config: cfg}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// ObjectKey builds the collision-avoiding key for one uploaded image:
// {timestamp}-{index}-{originalName} under the cars/ prefix.
func (s *StorageService) ObjectKey(timestamp time.Time, index int, originalName string) string {
	name := sanitizeFileName(originalName)
	return fmt.Sprintf("cars/%d-%d-%s", timestamp.UnixMilli(), index, name)
}

func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '-'
	}, name)
	if name == "" || name == "." {
		name = uuid.NewString()
	}
	return name
}

func (s *StorageService) SaveImage(data []byte, key, contentType string) (*StoredObject, error) {
	if s.config.Storage.MaxImageSize > 0 && int64(len(data)) > s.config.Storage.MaxImageSize {
		return nil, fmt.Errorf("image size %d bytes exceeds maximum allowed size %d bytes",
			len(data), s.config.Storage.MaxImageSize)
	}

	if err := s.ValidateImage(data); err != nil {
		return nil, err
	}

	if s.s3Client != nil {
		return s.saveToS3(data, key, contentType)
	}

	return s.saveToLocal(data, key, contentType)
}

func (s *StorageService) saveToS3(data []byte, key, contentType string) (*StoredObject, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &StoredObject{
		Key:         key,
		URL:         s.objectURL(key),
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}

func (s *StorageService) saveToLocal(data []byte, key, contentType string) (*StoredObject, error) {
	path := filepath.Join(s.config.Storage.LocalPath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write image file: %w", err)
	}

	return &StoredObject{
		Key:         key,
		URL:         s.objectURL(key),
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}

func (s *StorageService) Delete(key string) error {
	if s.s3Client == nil {
		path := filepath.Join(s.config.Storage.LocalPath, filepath.FromSlash(key))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete image file: %w", err)
		}
		return nil
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// DeleteAll removes a set of stored objects, logging failures instead of
// aborting; delete cleanup is best effort once the rows are gone.
func (s *StorageService) DeleteAll(keys []string) {
	for _, key := range keys {
		if err := s.Delete(key); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Failed to delete stored image")
		}
	}
}

func (s *StorageService) GeneratePresignedURL(key string, expiration time.Duration) (string, error) {
	if s.s3Client == nil {
		return s.objectURL(key), nil
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiration)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url, nil
}

func (s *StorageService) objectURL(key string) string {
	if s.s3Client == nil {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.Storage.BaseURL, "/"), key)
	}

	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

func (s *StorageService) ValidateImage(data []byte) error {
	if !isValidImageType(data) {
		return fmt.Errorf("invalid image file")
	}
	return nil
}

func isValidImageType(buffer []byte) bool {
	// JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}

	// PNG
	if len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47 {
		return true
	}

	// GIF
	if len(buffer) >= 6 && (string(buffer[0:6]) == "GIF87a" || string(buffer[0:6]) == "GIF89a") {
		return true
	}

	// WEBP (RIFF....WEBP)
	if len(buffer) >= 12 && string(buffer[0:4]) == "RIFF" && string(buffer[8:12]) == "WEBP" {
		return true
	}

	return false
}
