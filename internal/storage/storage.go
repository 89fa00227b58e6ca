package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyFile    = errors.New("пустые данные файла")
	ErrNotImage     = errors.New("файл не является изображением")
	ErrFileNotFound = errors.New("файл не найден")
	ErrInvalidName  = errors.New("некорректное имя файла")
)

// FileStorage keeps uploaded listing images. Files are addressed by the name
// returned from UploadFile.
type FileStorage interface {
	UploadFile(ctx context.Context, data []byte, filename string) (string, error)

	DeleteFile(ctx context.Context, name string) error

	GetFile(ctx context.Context, name string) ([]byte, error)
}

// prepareImage checks that data is an image and returns a fresh storage name
// and the detected content type.
func prepareImage(data []byte, filename string) (string, string, error) {
	if len(data) == 0 {
		return "", "", ErrEmptyFile
	}

	fileType := http.DetectContentType(data)
	if !strings.HasPrefix(fileType, "image/") {
		return "", "", ErrNotImage
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		switch fileType {
		case "image/jpeg":
			ext = ".jpg"
		case "image/png":
			ext = ".png"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".bin"
		}
	}

	return fmt.Sprintf("listing_%s%s", uuid.New().String(), ext), fileType, nil
}

// validateName rejects names that could escape the storage root.
func validateName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return ErrInvalidName
	}
	return nil
}
