package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentaroom/internal/domain"
)

// @Summary Список пользователей
// @Tags Пользователи
// @Produce json
// @Success 200 {array} domain.User
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /users [get]
func (h *Handler) getUsers(c *gin.Context) {
	users, err := h.services.User.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// @Summary Создать пользователя
// @Description Создает нового пользователя (только для администраторов)
// @Tags Пользователи
// @Accept json
// @Produce json
// @Param input body domain.CreateUserDTO true "Данные пользователя"
// @Success 201 {object} domain.User
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 409 {object} errorResponseBody "Email уже зарегистрирован"
// @Security ApiKeyAuth
// @Router /users [post]
func (h *Handler) createUser(c *gin.Context) {
	var req domain.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "name, email and password are required")
		return
	}

	user, err := h.services.User.Create(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// @Summary Получить пользователя по ID
// @Tags Пользователи
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} domain.User
// @Failure 404 {object} errorResponseBody "Пользователь не найден"
// @Security ApiKeyAuth
// @Router /users/{id} [get]
func (h *Handler) getUserByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Обновить пользователя
// @Description Любое из полей name, phone, email, isAdmin, password
// @Tags Пользователи
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param input body domain.AdminUpdateUserDTO true "Изменяемые поля"
// @Success 200 {object} domain.User
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Пользователь не найден"
// @Failure 409 {object} errorResponseBody "Email уже зарегистрирован"
// @Security ApiKeyAuth
// @Router /users/{id} [patch]
func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req domain.AdminUpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "Invalid JSON body")
		return
	}

	user, err := h.services.User.AdminUpdate(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Удалить пользователя
// @Description Заявки пользователя сохраняются без привязки к нему
// @Tags Пользователи
// @Param id path int true "ID пользователя"
// @Success 204 "Пользователь удален"
// @Failure 404 {object} errorResponseBody "Пользователь не найден"
// @Security ApiKeyAuth
// @Router /users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.services.User.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	noContentResponse(c)
}
