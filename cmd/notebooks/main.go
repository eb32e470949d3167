package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"notekeeper/internal/notes/adapters/directory/file"
	httpServer "notekeeper/internal/notes/adapters/http"
	"notekeeper/internal/notes/adapters/http/notebooks"
	"notekeeper/internal/notes/adapters/http/notes"
	"notekeeper/internal/notes/app"
	"notekeeper/internal/notes/config"
	"notekeeper/pkg/logger"
	"notekeeper/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrOpenStorage          = "failed to open note storage"
	ErrSeedNotebooks        = "failed to prepare notebooks file"
	ErrInitValidator        = "failed to initialize note validator"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "notes service started"
	LogServiceShutdownDone = "notes service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitStorage         = "initializing note storage"
	LogInitDirectory       = "initializing notebook directory"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogCatalogUnavailable  = "notebooks are unavailable until the file is fixed"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == string(logger.Production) {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStorage, zap.String("driver", string(cfg.Storage.Driver)))
		blobs, closeStorage, err := openBlobStore(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrOpenStorage, zap.Error(err))
			exitCode = 1
			return
		}

		validator, err := app.NewNoteValidator()
		if err != nil {
			log.Error(ctx, ErrInitValidator, zap.Error(err))
			exitCode = 1
			return
		}
		store := app.NewNoteStore(blobs, validator, app.WithKey(cfg.Storage.Key))
		store.LoadAll(ctx)

		log.Info(ctx, LogInitDirectory, zap.String("file", cfg.Directory.File))
		dir := file.New(cfg.Directory.File)
		if err := dir.Seed(ctx); err != nil {
			log.Error(ctx, ErrSeedNotebooks, zap.Error(err))
			exitCode = 1
			return
		}
		catalog := app.NewCatalog(dir)
		if _, err := catalog.Refresh(ctx); err != nil {
			log.Warn(ctx, LogCatalogUnavailable, zap.Error(err))
		}

		log.Info(ctx, LogInitHTTPServer)
		server := httpServer.NewApp(httpServer.ServerConfig{
			Port:         cfg.HTTP.Port,
			ReadTimeout:  cfg.HTTP.GetReadTimeout(),
			WriteTimeout: cfg.HTTP.GetWriteTimeout(),
			BodyLimit:    cfg.HTTP.BodyLimit,
		})
		httpServer.SetupRouter(server, cfg.HTTP.Port,
			notebooks.NewHandler(catalog, dir, store),
			notes.NewHandler(store, catalog))

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.Address()))
		go func() {
			if err := server.Listen(cfg.HTTP.Address()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		// Хранилище закрывается только после остановки HTTP сервера.
		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				httpErr := server.ShutdownWithContext(ctx)
				return errors.Join(httpErr, closeStorage(ctx))
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
