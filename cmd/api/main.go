package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/shoplite/shoplite-api/internal/config"
	"github.com/shoplite/shoplite-api/internal/handler"
	"github.com/shoplite/shoplite-api/internal/mailer"
	"github.com/shoplite/shoplite-api/internal/middleware"
	"github.com/shoplite/shoplite-api/internal/repository"
	"github.com/shoplite/shoplite-api/internal/service"
	"github.com/shoplite/shoplite-api/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	smtp, err := mailer.New(cfg)
	if err != nil {
		slog.Error("mailer configuration invalid", "error", err)
		os.Exit(1)
	}

	// The store connects lazily on first use; a failed attempt is
	// retried by the next request instead of being cached.
	db := repository.NewMongo(cfg.MongoURL, cfg.MongoDB)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	interestsRepo := repository.NewInterestsRepository(db)

	cookies := session.Gateway{Secure: cfg.IsProduction()}

	authService := service.NewAuthService(userRepo, smtp, cfg.JWTSecret, cfg.JWTExpiry)
	authHandler := handler.NewAuthHandler(authService, cookies)

	interestsService := service.NewInterestsService(categoryRepo, interestsRepo)
	interestsHandler := handler.NewInterestsHandler(interestsService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/auth/signup", authHandler.HandleSignup)
	r.Post("/api/auth/login", authHandler.HandleLogin)
	r.Post("/api/auth/resend-otp", authHandler.HandleResendOTP)
	r.Post("/api/auth/verify-otp", authHandler.HandleVerifyOTP)
	r.Post("/api/auth/logout", authHandler.HandleLogout)

	r.Get("/api/categories", interestsHandler.HandleListCategories)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(cookies, cfg.JWTSecret))
		r.Get("/api/interests", interestsHandler.HandleGetInterests)
		r.Post("/api/interests", interestsHandler.HandleSaveInterests)
	})

	// Index creation needs the store; tolerate it being down at boot
	// since the handle reconnects on demand.
	func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, ensure := range []func(context.Context) error{
			userRepo.EnsureIndexes,
			categoryRepo.EnsureIndexes,
		} {
			if err := ensure(ctx); err != nil {
				slog.Warn("index creation deferred", "error", err)
				return
			}
		}
	}()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}
	if err := db.Close(ctx); err != nil {
		slog.Error("closing database failed", "error", err)
	}

	slog.Info("server stopped")
}
