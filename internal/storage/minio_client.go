package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"feedgram/internal/config"
)

type Storage interface {
	UploadPostImage(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, string, error)
	UploadAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, string, error)
	DeleteObject(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing MinIO client: %w", err)
	}

	m := &MinIOClient{client: client, cfg: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("checking bucket: %w", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("creating bucket: %w", err)
		}
	}

	return m, nil
}

func (m *MinIOClient) UploadPostImage(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, string, error) {
	return m.upload(ctx, "posts", userID, fileName, file, size)
}

func (m *MinIOClient) UploadAvatar(ctx context.Context, userID, fileName string, file io.Reader, size int64) (string, string, error) {
	return m.upload(ctx, "avatars", userID, fileName, file, size)
}

func (m *MinIOClient) upload(ctx context.Context, prefix, userID, fileName string, file io.Reader, size int64) (string, string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now()
	objectName := fmt.Sprintf("%s/%s/%d/%02d/%s%s",
		prefix,
		userID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)

	_, err := m.client.PutObject(ctx, m.cfg.MinIO.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"user-id":           userID,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("uploading to MinIO: %w", err)
	}

	objectURL := fmt.Sprintf("%s/%s/%s", m.cfg.MinIO.PublicURL, m.cfg.MinIO.BucketName, objectName)

	return objectName, objectURL, nil
}

func (m *MinIOClient) DeleteObject(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.MinIO.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("deleting from MinIO: %w", err)
	}
	return nil
}
