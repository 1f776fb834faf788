package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NguyenHongSon4/app-02/broker"
	"github.com/NguyenHongSon4/app-02/config"
	"github.com/NguyenHongSon4/app-02/database"
	"github.com/NguyenHongSon4/app-02/routes"
	"github.com/NguyenHongSon4/app-02/services"
)

func openBackend(ctx context.Context, cfg config.Config) (database.Backend, error) {
	switch cfg.StoreDriver {
	case "sqlite", "postgres":
		return database.Setup(cfg)
	case "mongo":
		return database.NewMongoBackend(ctx, cfg.MongoURI, cfg.MongoDB)
	default:
		return database.NewFileBackend(cfg.DBFile), nil
	}
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s backend: %v", cfg.StoreDriver, err)
	}
	db, err := database.Open(ctx, backend, database.Options{CreateIfMissing: cfg.CreateIfMissing})
	cancel()
	if err != nil {
		log.Fatalf("Failed to load document store: %v", err)
	}
	defer db.Close()
	log.Printf("Document store loaded from %s backend", db.Driver())

	webSocketService := services.NewWebSocketService()
	services.WebSocketServiceInstance = webSocketService
	webSocketService.Start()

	producers := broker.MultiProducer{webSocketService}
	if cfg.NatsURL != "" {
		natsProducer, err := broker.NewNatsProducer(cfg.NatsURL)
		if err != nil {
			log.Printf("Warning: %v", err)
			log.Println("The application will continue without publishing events to NATS")
		} else {
			producers = append(producers, natsProducer)
		}
	}
	defer producers.Close()

	eventService := services.NewEventService(producers)
	services.EventServiceInstance = eventService

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours, cfg.HashPasswords)
	services.AuthServiceInstance = authService

	services.NoteServiceInstance = services.NewNoteService(eventService)
	services.AccountServiceInstance = services.NewAccountService(authService, eventService)

	uploadService, err := services.NewUploadService(cfg.UploadDir, cfg.UploadURLPrefix, eventService)
	if err != nil {
		log.Fatalf("Failed to initialize uploads: %v", err)
	}
	services.UploadServiceInstance = uploadService

	router := routes.NewRouter(cfg, db, routes.Services{
		Notes:     services.NoteServiceInstance,
		Accounts:  services.AccountServiceInstance,
		Auth:      services.AuthServiceInstance,
		Uploads:   services.UploadServiceInstance,
		WebSocket: services.WebSocketServiceInstance,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("API server is running on port %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}
