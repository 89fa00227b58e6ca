package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MigrationFile struct {
	Version string
	Name    string
	File    string
}

// ListMigrations returns the *.sql files of dir ordered by version.
// File names follow the "<version>_<name>.sql" pattern; others are skipped.
func ListMigrations(dir string, logger *zap.Logger) ([]MigrationFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении директории миграций: %w", err)
	}

	var migrations []MigrationFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(entry.Name(), "_", 2)
		if len(parts) != 2 {
			logger.Warn("неверный формат имени файла миграции", zap.String("file", entry.Name()))
			continue
		}

		migrations = append(migrations, MigrationFile{
			Version: parts[0],
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			File:    filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func RunMigrations(ctx context.Context, db *pgxpool.Pool, migrationsDir string, logger *zap.Logger) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			version VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы миграций: %w", err)
	}

	applied := make(map[string]bool)
	rows, err := db.Query(ctx, "SELECT version FROM migrations")
	if err != nil {
		return fmt.Errorf("ошибка при получении списка выполненных миграций: %w", err)
	}
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return fmt.Errorf("ошибка при сканировании записи о миграции: %w", err)
		}
		applied[version] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("ошибка при обработке результатов запроса: %w", err)
	}

	migrations, err := ListMigrations(migrationsDir, logger)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			logger.Debug("миграция уже выполнена", zap.String("version", m.Version), zap.String("name", m.Name))
			continue
		}

		content, err := os.ReadFile(m.File)
		if err != nil {
			return fmt.Errorf("ошибка при чтении файла миграции %s: %w", m.File, err)
		}

		logger.Info("выполнение миграции", zap.String("version", m.Version), zap.String("name", m.Name))

		tx, err := db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("ошибка при начале транзакции: %w", err)
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("ошибка при выполнении миграции %s: %w", m.File, err)
		}

		_, err = tx.Exec(ctx,
			"INSERT INTO migrations (version, name, applied_at) VALUES ($1, $2, $3)",
			m.Version, m.Name, time.Now(),
		)
		if err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("ошибка при записи информации о выполненной миграции: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("ошибка при коммите транзакции: %w", err)
		}
	}

	return nil
}
