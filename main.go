package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rentaroom/config"
	_ "rentaroom/docs"
	"rentaroom/internal/ratelimit"
	"rentaroom/internal/repository"
	"rentaroom/internal/service"
	"rentaroom/internal/storage"
	"rentaroom/internal/transport/rest"
	"rentaroom/internal/transport/websocket"
	"rentaroom/pkg/database"
	pkglogger "rentaroom/pkg/logger"
)

// @title Rent-A-Room API
// @version 2.1.0
// @description API объявлений об аренде жилья с заявками на бронирование
// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(fmt.Sprintf("не удалось загрузить конфигурацию: %v", err))
	}

	logger, err := pkglogger.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := database.NewPostgresDB(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Запуск миграций базы данных")
	if err := database.RunMigrations(ctx, db, cfg.MigrationsDir, logger); err != nil {
		logger.Fatal("Ошибка при выполнении миграций", zap.Error(err))
	}
	logger.Info("Миграции успешно выполнены")

	fileStorage, err := newFileStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Не удалось инициализировать хранилище файлов", zap.Error(err))
	}

	limiter, rdb := newLimiter(ctx, cfg, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	bookings := websocket.NewBookingHub(logger)
	go bookings.Run(ctx)

	repos := repository.NewRepositories(db)

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      logger,
		Config:      cfg,
		FileStorage: fileStorage,
		Notifier:    bookings,
	})

	handler := rest.NewHandler(services, fileStorage, limiter, bookings, logger, cfg)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	logger.Info("Сервер запущен",
		zap.String("addr", srv.Addr),
		zap.String("service", cfg.Name),
		zap.String("version", cfg.Version))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Выключение сервера...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", zap.Error(err))
		return
	}

	logger.Info("Сервер успешно остановлен")
}

func newFileStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.FileStorage, error) {
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("S3 хранилище успешно инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
		return s3Storage, nil
	}

	localStorage, err := storage.NewLocalStorage(cfg.Uploads.Dir, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Используется локальное хранилище файлов", zap.String("dir", cfg.Uploads.Dir))
	return localStorage, nil
}

// newLimiter returns a nil limiter when Redis is not configured.
func newLimiter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ratelimit.Limiter, *redis.Client) {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR не задан, ограничение частоты запросов отключено")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis недоступен, лимитер будет пропускать запросы до восстановления", zap.Error(err))
	} else {
		logger.Info("Подключение к Redis установлено", zap.String("addr", cfg.Redis.Addr))
	}

	return ratelimit.New(rdb, cfg.RateLimit.Window, logger), rdb
}
