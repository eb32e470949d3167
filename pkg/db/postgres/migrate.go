package postgres

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

const (
	LogMigrationsApplied = "database migrations applied"
	LogNoMigrations      = "database schema is up to date"

	ErrResolveMigrations       = "failed to resolve migrations directory"
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
)

// SourceURL превращает путь к каталогу миграций в file:// URL.
func SourceURL(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrResolveMigrations, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// MigrateDSN применяет все миграции из каталога dir к базе databaseURL.
func MigrateDSN(ctx context.Context, databaseURL, dir string) error {
	log := logger.Log(ctx).With(zap.String("component", "migrate"))

	source, err := SourceURL(dir)
	if err != nil {
		return err
	}

	m, err := migrate.New(source, databaseURL)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info(ctx, LogNoMigrations, zap.String("source", source))
			return nil
		}
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied, zap.String("source", source))
	return nil
}
