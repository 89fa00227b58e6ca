package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentaroom/internal/domain"
)

const imageField = "image"

// @Summary Список объявлений
// @Description Возвращает все объявления, новые первыми
// @Tags Объявления
// @Produce json
// @Success 200 {array} domain.Listing
// @Failure 500 {object} errorResponseBody
// @Router /listings [get]
func (h *Handler) getListings(c *gin.Context) {
	listings, err := h.services.Listing.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

// @Summary Статистика объявлений
// @Description Количество объявлений, города, типы и диапазон цен
// @Tags Объявления
// @Produce json
// @Success 200 {object} domain.ListingStats
// @Failure 500 {object} errorResponseBody
// @Router /listings/stats [get]
func (h *Handler) getListingStats(c *gin.Context) {
	stats, err := h.services.Listing.Stats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary Получить объявление
// @Tags Объявления
// @Produce json
// @Param id path int true "ID объявления"
// @Success 200 {object} domain.Listing
// @Failure 400 {object} errorResponseBody "Неверный ID"
// @Failure 404 {object} errorResponseBody "Объявление не найдено"
// @Router /listings/{id} [get]
func (h *Handler) getListingByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	listing, err := h.services.Listing.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// @Summary Создать объявление
// @Description Принимает JSON или multipart/form-data с необязательным файлом image.
// @Description Многоязычные поля передаются объектом {en, ru, tj}, JSON-строкой или плоскими ключами nameEn, nameRu и т.д.
// @Tags Объявления
// @Accept json,mpfd
// @Produce json
// @Param input body domain.Listing true "Объявление"
// @Success 201 {object} domain.Listing
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 500 {object} errorResponseBody
// @Router /listings [post]
func (h *Handler) createListing(c *gin.Context) {
	input, upload, ok := h.readListingBody(c)
	if !ok {
		return
	}

	listing, err := h.services.Listing.Create(c.Request.Context(), input, upload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// @Summary Обновить объявление
// @Description Частичное обновление: изменяются только переданные поля
// @Tags Объявления
// @Accept json,mpfd
// @Produce json
// @Param id path int true "ID объявления"
// @Param input body domain.Listing true "Изменяемые поля"
// @Success 200 {object} domain.Listing
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Объявление не найдено"
// @Router /listings/{id} [put]
// @Router /listings/{id} [patch]
func (h *Handler) updateListing(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	input, upload, ok := h.readListingBody(c)
	if !ok {
		return
	}

	listing, err := h.services.Listing.Update(c.Request.Context(), id, input, upload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// @Summary Удалить объявление
// @Tags Объявления
// @Param id path int true "ID объявления"
// @Success 204 "Объявление удалено"
// @Failure 404 {object} errorResponseBody "Объявление не найдено"
// @Router /listings/{id} [delete]
func (h *Handler) deleteListing(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Listing.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	noContentResponse(c)
}

// readListingBody decodes a listing body from JSON or multipart form data.
// Form values arrive as strings; the normalizer coerces them.
func (h *Handler) readListingBody(c *gin.Context) (domain.ListingInput, *domain.UploadedFile, bool) {
	maxBytes := int64(h.config.Uploads.MaxMB) << 20

	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		input := domain.ListingInput{}
		if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
			h.logger.Warn("неверный формат данных", zap.Error(err))
			badRequestResponse(c, "Invalid JSON body")
			return nil, nil, false
		}
		return input, nil, true
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+1<<20)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorResponse(c, http.StatusRequestEntityTooLarge, "Request body is too large")
			return nil, nil, false
		}
		h.logger.Warn("неверный формат формы", zap.Error(err))
		badRequestResponse(c, "Invalid multipart body")
		return nil, nil, false
	}

	input := domain.ListingInput{}
	for key, values := range form.Value {
		if len(values) > 0 {
			input[key] = values[0]
		}
	}

	files := form.File[imageField]
	if len(files) == 0 {
		return input, nil, true
	}

	header := files[0]
	if header.Size > maxBytes {
		errorResponse(c, http.StatusRequestEntityTooLarge, "Image is too large")
		return nil, nil, false
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("ошибка открытия загруженного файла", zap.Error(err))
		internalServerErrorResponse(c)
		return nil, nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("ошибка чтения загруженного файла", zap.Error(err))
		internalServerErrorResponse(c)
		return nil, nil, false
	}

	return input, &domain.UploadedFile{Filename: header.Filename, Data: data}, true
}
