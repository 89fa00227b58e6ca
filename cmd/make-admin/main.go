// Command make-admin creates the administrator account or promotes an existing
// user with the given email.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rentaroom/config"
	"rentaroom/internal/repository"
	"rentaroom/internal/service"
	"rentaroom/pkg/database"
	pkglogger "rentaroom/pkg/logger"
)

func main() {
	email := flag.String("email", "admin@admin.com", "email администратора")
	password := flag.String("password", "admin0000", "пароль для нового аккаунта")
	name := flag.String("name", "Admin", "имя для нового аккаунта")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(fmt.Sprintf("не удалось загрузить конфигурацию: %v", err))
	}

	logger, err := pkglogger.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, cfg.MigrationsDir, logger); err != nil {
		logger.Fatal("Ошибка при выполнении миграций", zap.Error(err))
	}

	users := service.NewUserService(repository.NewRepositories(db).User, logger)

	user, created, err := users.EnsureAdmin(ctx, *name, *email, *password)
	if err != nil {
		logger.Fatal("Не удалось назначить администратора", zap.String("email", *email), zap.Error(err))
	}

	if created {
		logger.Info("Администратор создан", zap.Int64("id", user.ID), zap.String("email", user.Email))
		return
	}
	logger.Info("Пользователь назначен администратором", zap.Int64("id", user.ID), zap.String("email", user.Email))
}
