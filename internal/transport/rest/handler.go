package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"rentaroom/config"
	"rentaroom/internal/ratelimit"
	"rentaroom/internal/service"
	"rentaroom/internal/storage"
	"rentaroom/internal/transport/websocket"
)

const (
	tooManyRequestsMessage = "Too many requests, please try again later."
	tooManyAuthMessage     = "Too many auth attempts, please try again later."
)

type Handler struct {
	services *service.Services
	files    storage.FileStorage
	limiter  *ratelimit.Limiter
	bookings *websocket.BookingHub
	logger   *zap.Logger
	config   *config.Config
}

// NewHandler wires the HTTP layer. files, limiter and bookings may be nil.
func NewHandler(services *service.Services, files storage.FileStorage, limiter *ratelimit.Limiter, bookings *websocket.BookingHub, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		files:    files,
		limiter:  limiter,
		bookings: bookings,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.requestIDMiddleware())

	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.Use(h.limiter.Middleware("general", h.config.RateLimit.General, tooManyRequestsMessage))

	router.GET("/", h.health)

	router.GET("/uploads/*filepath", h.getUpload)

	listings := router.Group("/listings")
	{
		listings.GET("", h.getListings)
		listings.GET("/stats", h.getListingStats)
		listings.GET("/:id", h.getListingByID)
		listings.POST("", h.createListing)
		listings.PUT("/:id", h.updateListing)
		listings.PATCH("/:id", h.updateListing)
		listings.DELETE("/:id", h.deleteListing)
	}

	messages := router.Group("/messages")
	{
		messages.POST("", h.createMessage)

		admin := messages.Group("", h.authMiddleware(), h.adminMiddleware())
		{
			admin.GET("", h.getMessages)
			admin.GET("/:id", h.getMessageByID)
			admin.PATCH("/:id", h.updateMessageStatus)
			admin.DELETE("/:id", h.deleteMessage)
		}
	}

	auth := router.Group("/auth")
	{
		authLimit := h.limiter.Middleware("auth", h.config.RateLimit.Auth, tooManyAuthMessage)
		auth.POST("/register", authLimit, h.register)
		auth.POST("/login", authLimit, h.login)

		me := auth.Group("/me", h.authMiddleware())
		{
			me.GET("", h.getCurrentUser)
			me.PATCH("", h.updateCurrentUser)
		}
	}

	users := router.Group("/users", h.authMiddleware(), h.adminMiddleware())
	{
		users.GET("", h.getUsers)
		users.POST("", h.createUser)
		users.GET("/:id", h.getUserByID)
		users.PATCH("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}

	if h.bookings != nil {
		router.GET("/ws/bookings", h.queryTokenMiddleware(), h.authMiddleware(), h.adminMiddleware(), h.streamBookings)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NoRoute(func(c *gin.Context) {
		notFoundResponse(c, "Route not found")
	})
}

// @Summary Состояние сервиса
// @Description Возвращает имя и версию сервиса
// @Tags Служебные
// @Produce json
// @Success 200 {object} healthResponse
// @Router / [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Service: h.config.Name,
		Version: h.config.Version,
		Docs:    "/swagger/index.html",
	})
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}
