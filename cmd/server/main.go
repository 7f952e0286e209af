package main

import (
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/sang6174/ocean-chat-server-sub000/config"
	chatrepo "github.com/sang6174/ocean-chat-server-sub000/internal/chat/repository"
	chatuc "github.com/sang6174/ocean-chat-server-sub000/internal/chat/usecase"
	"github.com/sang6174/ocean-chat-server-sub000/internal/events"
	notifrepo "github.com/sang6174/ocean-chat-server-sub000/internal/notification/repository"
	notifuc "github.com/sang6174/ocean-chat-server-sub000/internal/notification/usecase"
	"github.com/sang6174/ocean-chat-server-sub000/internal/realtime"
	userrepo "github.com/sang6174/ocean-chat-server-sub000/internal/user/repository"
	useruc "github.com/sang6174/ocean-chat-server-sub000/internal/user/usecase"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
	"github.com/sang6174/ocean-chat-server-sub000/server"
)

func main() {
	v, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	connector := pgdriver.NewConnector(pgdriver.WithDSN(cfg.Bun.DSN))
	sqlDB := sql.OpenDB(connector)
	db := bun.NewDB(sqlDB, pgdialect.New())
	defer db.Close()

	// The event bus and registry are process-wide state: built empty here,
	// handlers registered once, never torn down while serving.
	bus := events.NewInProcessBus(appLogger)
	registry := realtime.NewRegistry(appLogger)

	userRepository := userrepo.NewUserRepository(db, *appLogger)
	chatRepository := chatrepo.NewChatRepository(db, *appLogger)
	notifRepository := notifrepo.NewNotificationRepository(db, *appLogger)

	fanout := realtime.NewFanout(registry, chatRepository, appLogger)
	fanout.RegisterHandlers(bus)

	userUsecase := useruc.NewUserUsecase(userRepository, *appLogger, *cfg)
	chatUsecase := chatuc.NewChatUsecase(chatRepository, bus, *appLogger)
	notifUsecase := notifuc.NewNotificationUsecase(notifRepository, bus, *appLogger)

	gateway := realtime.NewGateway(registry, cfg, appLogger)
	srv := server.New(cfg, appLogger, userUsecase, chatUsecase, notifUsecase, gateway)

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.Listen(); err != nil {
			log.Fatalf("server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")
	if err := srv.Shutdown(); err != nil {
		appLogger.Error("error shutting down server", "err", err)
	}
}
