package storage

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"amc-crm/internal/app/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

type MinIOClient struct {
	client      *minio.Client
	bucketName  string
	urlLifetime time.Duration
}

// NewMinIOClient создает клиент файлового хранилища документов
func NewMinIOClient(cfg config.MinioConfig) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Создаем bucket если не существует
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("Bucket %s created successfully", cfg.Bucket)
	}

	return &MinIOClient{
		client:      client,
		bucketName:  cfg.Bucket,
		urlLifetime: cfg.URLLifetime,
	}, nil
}

// contentTypeByExt определяет content type по расширению файла
func contentTypeByExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// PresignedUploadURL генерирует уникальный ключ объекта и подписанный URL,
// по которому клиент выполняет PUT файла напрямую в хранилище.
// Content-Type запроса должен совпадать с возвращаемым
func (m *MinIOClient) PresignedUploadURL(ctx context.Context, originalFilename string) (objectKey, uploadURL, contentType string, err error) {
	ext := filepath.Ext(originalFilename)
	objectKey = fmt.Sprintf("doc_%s_%d%s",
		uuid.New().String()[:8],
		time.Now().Unix(),
		ext)

	u, err := m.client.PresignedPutObject(ctx, m.bucketName, objectKey, m.urlLifetime)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to presign upload: %w", err)
	}

	return objectKey, u.String(), contentTypeByExt(ext), nil
}

// GetFileURL возвращает временный URL для скачивания документа
func (m *MinIOClient) GetFileURL(ctx context.Context, objectKey string) (string, error) {
	params := url.Values{}
	u, err := m.client.PresignedGetObject(ctx, m.bucketName, objectKey, m.urlLifetime, params)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return u.String(), nil
}

// DeleteFile удаляет документ из хранилища
func (m *MinIOClient) DeleteFile(ctx context.Context, objectKey string) error {
	err := m.client.RemoveObject(ctx, m.bucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logrus.Infof("File %s deleted successfully", objectKey)
	return nil
}

// FileExists проверяет существует ли документ
func (m *MinIOClient) FileExists(ctx context.Context, objectKey string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucketName, objectKey, minio.StatObjectOptions{})
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file: %w", err)
	}

	return true, nil
}
