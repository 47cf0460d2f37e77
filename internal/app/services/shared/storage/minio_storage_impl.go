package storage

import (
	"context"
	"io"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/pkg/exceptions"
	"time"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewMinioStorage(minioClient *minio.Client, bucketName string) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

func (m *minioStorage) UploadObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, m.BucketName)
	}
	return nil
}

func (m *minioStorage) PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := m.MinioClient.PresignedGetObject(ctx, m.BucketName, objectName, expiry, nil)
	if err != nil {
		return "", exceptions.ErrMinioPresignObject(err, m.BucketName)
	}
	return presignedURL.String(), nil
}
