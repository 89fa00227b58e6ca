package rest

import (
	"github.com/gin-gonic/gin"
)

// @Summary Лента заявок
// @Description Websocket поток событий booking.created и booking.status_changed. Токен передается в заголовке или параметре token
// @Tags Заявки
// @Security ApiKeyAuth
// @Param token query string false "JWT токен администратора"
// @Success 101 {object} websocket.BookingEvent
// @Failure 401 {object} errorResponseBody "Нет токена"
// @Failure 403 {object} errorResponseBody "Нужны права администратора"
// @Router /ws/bookings [get]
func (h *Handler) streamBookings(c *gin.Context) {
	identity, _ := getIdentity(c)

	h.bookings.Serve(c.Writer, c.Request, identity.UserID)
}
