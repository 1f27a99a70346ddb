package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/mailer"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := repository.New(ctx, cfg.DB.URL)
	cancel()
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(shutdownCtx); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	blogRepo := repository.NewMongoBlogRepository(db)
	contactRepo := repository.NewMongoContactRepository(db)

	var notifier mailer.Notifier = mailer.NopNotifier{}
	mailCfg := mailer.Config{
		Host:       cfg.Email.Host,
		Port:       cfg.Email.Port,
		Username:   cfg.Email.User,
		Password:   cfg.Email.Pass,
		OwnerEmail: cfg.Email.OwnerEmail,
		OwnerName:  cfg.Site.OwnerName,
	}
	if mailCfg.Configured() {
		smtp, err := mailer.NewSMTPNotifier(mailCfg)
		if err != nil {
			logging.Fatal("failed to create mail client", "error", err)
		}
		notifier = smtp
	} else {
		slog.Warn("email credentials not configured, contact notifications disabled")
	}

	blogService := service.NewBlogService(blogRepo, cfg.Site.Author)
	contactService := service.NewContactService(contactRepo, notifier)

	if cfg.Admin.Key == "" {
		slog.Warn("admin key not configured, admin endpoints disabled")
	}

	router := handler.Routes(blogService, contactService, db, handler.Options{
		AdminKey:         cfg.Admin.Key,
		Dev:              cfg.Dev(),
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		RateLimit:        cfg.RateLimit,
		ContactRateLimit: cfg.ContactRateLimit,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
