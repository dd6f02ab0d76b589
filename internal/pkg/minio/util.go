package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Upload stores the object and returns its public URL
func (s *Storage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return s.PublicURL(objectName), nil
}

func (s *Storage) Delete(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *Storage) PublicURL(objectName string) string {
	return s.publicBase + objectName
}

// ObjectName reverses PublicURL; false for URLs outside this bucket
func (s *Storage) ObjectName(url string) (string, bool) {
	name, ok := strings.CutPrefix(url, s.publicBase)
	return name, ok && name != ""
}
