package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/techstore-lab/techstore/internal/config"
	"github.com/techstore-lab/techstore/internal/events"
	"github.com/techstore-lab/techstore/internal/handlers"
	"github.com/techstore-lab/techstore/internal/logging"
	authmw "github.com/techstore-lab/techstore/internal/middleware/auth"
	loggingmw "github.com/techstore-lab/techstore/internal/middleware/logging"
	"github.com/techstore-lab/techstore/internal/render"
	"github.com/techstore-lab/techstore/internal/service/token"
	httpserver "github.com/techstore-lab/techstore/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("DB init error: %v", err)
	}
	if err := config.Seed(db); err != nil {
		log.Fatalf("DB seed error: %v", err)
	}

	producer := events.NewProducer(configuration.KAFKA_ADDRESS)

	tokens := &token.Service{Secret: []byte(configuration.JWT_SECRET)}
	renderer := &render.Renderer{
		Dir:    configuration.WEB_DIR,
		Escape: configuration.RENDER_MODE == config.RenderModeHardened,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:             db,
		Auth:           &authmw.Middleware{Tokens: tokens},
		AuthHandler:    &handlers.AuthHandler{DB: db, Tokens: tokens, Producer: producer},
		ProductHandler: &handlers.ProductHandler{DB: db, Producer: producer},
		ReviewHandler:  &handlers.ReviewHandler{DB: db, Producer: producer},
		PageHandler:    &handlers.PageHandler{DB: db, Renderer: renderer},
		WebDir:         configuration.WEB_DIR,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server starting", "port", configuration.PORT, "render_mode", configuration.RENDER_MODE)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("producer close error: %v", err)
	}

	log.Println("shutdown complete")
}
