package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LocalStorage keeps files in a directory on disk.
type LocalStorage struct {
	dir    string
	logger *zap.Logger
}

func NewLocalStorage(dir string, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории загрузок: %w", err)
	}

	return &LocalStorage{
		dir:    dir,
		logger: logger,
	}, nil
}

func (s *LocalStorage) UploadFile(_ context.Context, data []byte, filename string) (string, error) {
	name, _, err := prepareImage(data, filename)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("ошибка записи файла: %w", err)
	}

	s.logger.Debug("файл сохранен", zap.String("name", name), zap.Int("size", len(data)))

	return name, nil
}

func (s *LocalStorage) DeleteFile(_ context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrFileNotFound
		}
		return fmt.Errorf("ошибка удаления файла: %w", err)
	}

	return nil
}

func (s *LocalStorage) GetFile(_ context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	return data, nil
}
