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

	"github.com/parsa-mehek/LinkingLink-client/internal/auth"
	"github.com/parsa-mehek/LinkingLink-client/internal/server"
	"github.com/parsa-mehek/LinkingLink-client/pkg/api"
	"github.com/parsa-mehek/LinkingLink-client/pkg/config"
	"github.com/parsa-mehek/LinkingLink-client/pkg/logger"
)

const (
	version = "v1.0.0"

	shutdownTimeoutSec = 5
)

type repository interface {
	server.UserRepository
	server.ProgressRepository
	Close() error
}

func main() {
	log := logger.DefaultLogger()
	log.Infof("Запуск сервера LinkingLink версии %s", version)

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	repo, err := openRepository(cfg.Database, log)
	if err != nil {
		log.Fatalf("Ошибка подключения к хранилищу: %v", err)
	}
	defer repo.Close()

	tokenManager := auth.NewJWTManager(cfg.Auth.JWTSecret)

	userService := server.NewUserService(repo, log)
	progressService := server.NewProgressService(repo, log)

	handler := api.NewHandler(tokenManager, userService, progressService, cfg.Auth.TokenTTL(), log)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.InitRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Сервер запущен на %s", srv.Addr)
		var serverErr error

		if cfg.Server.TLSCertFile != "" && cfg.Server.TLSKeyFile != "" {
			log.Infof("Используются сертификаты из файлов: %s, %s", cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
			serverErr = srv.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			log.Warnf("TLS не настроен, сервер запущен без шифрования")
			serverErr = srv.ListenAndServe()
		}

		if serverErr != nil && !errors.Is(serverErr, http.ErrServerClosed) {
			log.Fatalf("Ошибка запуска сервера: %v", serverErr)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infof("Завершение работы сервера...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeoutSec*time.Second)
	defer cancel()

	if shutdownErr := srv.Shutdown(ctx); shutdownErr != nil {
		log.Errorf("Ошибка при завершении работы сервера: %v", shutdownErr)
	}

	log.Infof("Сервер остановлен")
}

func openRepository(cfg config.DatabaseConfig, log logger.Logger) (repository, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warnf("Используется хранилище в памяти, данные не сохранятся после остановки")

		return server.NewMemoryRepository(), nil
	}

	repo, err := server.NewPostgresRepository(cfg.GetDSN(), log)
	if err != nil {
		return nil, err
	}

	if initErr := repo.InitSchema(); initErr != nil {
		_ = repo.Close()

		return nil, fmt.Errorf("ошибка инициализации схемы базы данных: %w", initErr)
	}

	return repo, nil
}
