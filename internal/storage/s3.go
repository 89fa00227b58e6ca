package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"rentaroom/config"
)

const s3KeyPrefix = "uploads/"

// S3Storage keeps files in an S3-compatible bucket under the "uploads/" prefix.
type S3Storage struct {
	client *minio.Client
	cfg    config.S3Config
	logger *zap.Logger
}

func NewS3Storage(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента S3: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки существования бакета: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания бакета: %w", err)
		}
	}

	return &S3Storage{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

func (s *S3Storage) UploadFile(ctx context.Context, data []byte, filename string) (string, error) {
	name, fileType, err := prepareImage(data, filename)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, s.cfg.Bucket, s3KeyPrefix+name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: fileType,
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки файла в S3: %w", err)
	}

	return name, nil
}

func (s *S3Storage) DeleteFile(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	err := s.client.RemoveObject(ctx, s.cfg.Bucket, s3KeyPrefix+name, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления файла из S3: %w", err)
	}

	return nil
}

func (s *S3Storage) GetFile(ctx context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	object, err := s.client.GetObject(ctx, s.cfg.Bucket, s3KeyPrefix+name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения файла из S3: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("ошибка чтения файла из S3: %w", err)
	}

	return data, nil
}
