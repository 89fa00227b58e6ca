package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentaroom/internal/domain"
)

// @Summary Регистрация
// @Tags Авторизация
// @Accept json
// @Produce json
// @Param input body domain.RegisterRequest true "Данные для регистрации"
// @Success 201 {object} domain.AuthResponse
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 409 {object} errorResponseBody "Email уже зарегистрирован"
// @Failure 429 {object} errorResponseBody "Слишком много попыток"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "name, email and password are required")
		return
	}

	resp, err := h.services.Auth.Register(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Вход
// @Tags Авторизация
// @Accept json
// @Produce json
// @Param input body domain.LoginRequest true "Email и пароль"
// @Success 200 {object} domain.AuthResponse
// @Failure 401 {object} errorResponseBody "Неверный email или пароль"
// @Failure 429 {object} errorResponseBody "Слишком много попыток"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "email and password are required")
		return
	}

	resp, err := h.services.Auth.Login(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Текущий пользователь
// @Tags Авторизация
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (h *Handler) getCurrentUser(c *gin.Context) {
	identity, _ := getIdentity(c)

	user, err := h.services.User.GetByID(c.Request.Context(), identity.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Обновить профиль
// @Description Пустое имя игнорируется, телефон обновляется, если передан
// @Tags Авторизация
// @Accept json
// @Produce json
// @Param input body domain.UpdateProfileDTO true "Имя и телефон"
// @Success 200 {object} domain.User
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Security ApiKeyAuth
// @Router /auth/me [patch]
func (h *Handler) updateCurrentUser(c *gin.Context) {
	identity, _ := getIdentity(c)

	var req domain.UpdateProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "Invalid JSON body")
		return
	}

	user, err := h.services.User.UpdateProfile(c.Request.Context(), identity.UserID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
