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

	"mingle/internal/config"
	"mingle/internal/entity"
	"mingle/internal/handler"
	"mingle/internal/middleware"
	"mingle/internal/repository"
	"mingle/internal/service"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Local development keeps secrets in .env; absence is fine elsewhere.
	_ = godotenv.Load()

	v, err := config.Load("config")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg, err := config.Parse(v)
	if err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	log := logger.New(cfg.Log.Level)

	db, err := gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		defer sqlDB.Close()
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Message{},
		&entity.Post{},
		&entity.Like{},
		&entity.Comment{},
		&entity.Notification{},
		&entity.SearchHistory{},
	); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	users := repository.NewSQLiteUserRepository(db)
	messages := repository.NewSQLiteMessageRepository(db)
	posts := repository.NewSQLitePostRepository(db)
	notifications := repository.NewSQLiteNotificationRepository(db)
	history := repository.NewSQLiteSearchHistoryRepository(db)

	if err := seedAdmin(context.Background(), users, cfg.Admin, log); err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
	defer limiter.Stop()

	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options.MaxAge = cfg.Session.MaxAge
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode

	router := &handler.Router{
		Auth:          handler.NewAuthHandler(service.NewAuthService(users, log), store, log),
		Users:         handler.NewUserHandler(service.NewUserService(users, log), log),
		Posts:         handler.NewPostHandler(service.NewPostService(posts, notifications, log), log),
		Conversations: handler.NewConversationHandler(service.NewConversationService(messages, notifications, log), log),
		Notifications: handler.NewNotificationHandler(service.NewNotificationService(notifications, log), log),
		Search:        handler.NewSearchHandler(service.NewSearchService(users, posts, messages, history, log), log),
		Admin:         handler.NewAdminHandler(service.NewAdminService(users, posts, messages, log), store, log),
		Store:         store,
		RateLimiter:   limiter,
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Build(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// seedAdmin creates the moderation account on first startup. Without seed
// credentials the instance simply runs without an admin.
func seedAdmin(ctx context.Context, users repository.UserRepository, admin config.Admin, log *logger.Logger) error {
	if admin.Email == "" || admin.Password == "" {
		log.Warn("no admin credentials configured, skipping admin seed")
		return nil
	}

	if _, err := users.GetByEmail(ctx, admin.Email); err == nil {
		return nil
	} else if apperr.CodeOf(err) != apperr.CodeNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := users.Create(ctx, &entity.User{
		DisplayName:  "Administrator",
		Email:        admin.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
	}); err != nil {
		return err
	}
	log.Info("admin account created", "email", admin.Email)
	return nil
}
