package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/staffhub/internal/config"
	"github.com/staffhub/staffhub/internal/events"
	"github.com/staffhub/staffhub/internal/httpserver"
	"github.com/staffhub/staffhub/internal/logging"
	"github.com/staffhub/staffhub/internal/models"
	"github.com/staffhub/staffhub/internal/repo"
	"github.com/staffhub/staffhub/internal/service"
	"github.com/staffhub/staffhub/internal/tokens"
	"github.com/staffhub/staffhub/pkg/db"
	loggingmw "github.com/staffhub/staffhub/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(loggingmw.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.Position{}); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	issuer := &tokens.Issuer{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}

	producer := events.NewProducer(cfg.KafkaBrokers, "staffhub.events")
	defer producer.Close()

	gormRepo := &repo.GormRepo{DB: gdb}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{Repo: gormRepo, Tokens: issuer, Events: producer},
		},
		UserHandler: &httpserver.UserHTTP{
			Svc: &service.UserService{Repo: gormRepo},
		},
		PositionHandler: &httpserver.PositionHTTP{
			Svc: &service.PositionService{Repo: gormRepo, Events: producer},
		},
		Tokens: issuer,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
