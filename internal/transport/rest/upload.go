package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rentaroom/internal/storage"
)

// @Summary Изображение объявления
// @Tags Служебные
// @Produce image/jpeg,image/png,image/gif,image/webp
// @Param filepath path string true "Имя файла"
// @Success 200 {file} binary
// @Failure 404 {object} errorResponseBody "Файл не найден"
// @Router /uploads/{filepath} [get]
func (h *Handler) getUpload(c *gin.Context) {
	if h.files == nil {
		notFoundResponse(c, "File not found")
		return
	}

	name := strings.TrimPrefix(c.Param("filepath"), "/")

	data, err := h.files.GetFile(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, storage.ErrInvalidName) {
			notFoundResponse(c, "File not found")
			return
		}
		h.handleServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
