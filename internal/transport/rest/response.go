package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentaroom/internal/domain"
)

type errorResponseBody struct {
	Error string `json:"error"`
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{Error: message})
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusNotFound, message)
}

func internalServerErrorResponse(c *gin.Context) {
	errorResponse(c, http.StatusInternalServerError, "Internal server error")
}

func noContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// handleServiceError maps the kind of a service error onto an HTTP status.
// Internal failures never leak their message.
func (h *Handler) handleServiceError(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		badRequestResponse(c, err.Error())
	case domain.KindUnauthorized:
		errorResponse(c, http.StatusUnauthorized, err.Error())
	case domain.KindForbidden:
		errorResponse(c, http.StatusForbidden, err.Error())
	case domain.KindNotFound:
		notFoundResponse(c, err.Error())
	case domain.KindConflict:
		errorResponse(c, http.StatusConflict, err.Error())
	default:
		h.logger.Error("внутренняя ошибка",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err))
		internalServerErrorResponse(c)
	}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		badRequestResponse(c, "Invalid id")
		return 0, false
	}
	return id, true
}
