package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentaroom/internal/domain"
)

// @Summary Отправить заявку на бронирование
// @Description Доступно без авторизации. Статус новой заявки всегда PENDING.
// @Tags Заявки
// @Accept json
// @Produce json
// @Param input body domain.CreateMessageDTO true "Заявка"
// @Success 201 {object} domain.Message
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /messages [post]
func (h *Handler) createMessage(c *gin.Context) {
	var req domain.CreateMessageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "listingId, name, phone, message are required")
		return
	}

	msg, err := h.services.Message.Create(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// @Summary Список заявок
// @Tags Заявки
// @Produce json
// @Success 200 {array} domain.MessageWithRelations
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /messages [get]
func (h *Handler) getMessages(c *gin.Context) {
	messages, err := h.services.Message.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// @Summary Получить заявку
// @Tags Заявки
// @Produce json
// @Param id path int true "ID заявки"
// @Success 200 {object} domain.MessageWithRelations
// @Failure 404 {object} errorResponseBody "Заявка не найдена"
// @Security ApiKeyAuth
// @Router /messages/{id} [get]
func (h *Handler) getMessageByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	msg, err := h.services.Message.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

// @Summary Изменить статус заявки
// @Description Допустимые статусы: PENDING, ACCEPTED, REJECTED
// @Tags Заявки
// @Accept json
// @Produce json
// @Param id path int true "ID заявки"
// @Param input body domain.UpdateMessageStatusDTO true "Новый статус"
// @Success 200 {object} domain.Message
// @Failure 400 {object} errorResponseBody "Недопустимый статус"
// @Failure 404 {object} errorResponseBody "Заявка не найдена"
// @Security ApiKeyAuth
// @Router /messages/{id} [patch]
func (h *Handler) updateMessageStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req domain.UpdateMessageStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "status must be PENDING, ACCEPTED or REJECTED")
		return
	}

	msg, err := h.services.Message.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

// @Summary Удалить заявку
// @Tags Заявки
// @Param id path int true "ID заявки"
// @Success 204 "Заявка удалена"
// @Failure 404 {object} errorResponseBody "Заявка не найдена"
// @Security ApiKeyAuth
// @Router /messages/{id} [delete]
func (h *Handler) deleteMessage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Message.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	noContentResponse(c)
}
