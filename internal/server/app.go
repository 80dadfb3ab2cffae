// Package server initializes and runs the Vaultkeep server application.
// It opens the database, applies migrations, wires the security services and
// the HTTP endpoint, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/vaultkeep/internal/cryptox"
	"github.com/dmitrijs2005/vaultkeep/internal/logging"
	"github.com/dmitrijs2005/vaultkeep/internal/server/auth"
	"github.com/dmitrijs2005/vaultkeep/internal/server/config"
	"github.com/dmitrijs2005/vaultkeep/internal/server/httpapi"
	"github.com/dmitrijs2005/vaultkeep/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/vaultkeep/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	tokens  *auth.TokenService
	users   *services.UserService
	secrets *services.SecretService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := repomanager.OpenDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	keyProvider, err := cryptox.NewStaticKeyProvider([]byte(cfg.EncryptionKey))
	if err != nil {
		return nil, fmt.Errorf("encryption key error: %w", err)
	}
	cipher, err := cryptox.NewCipher(keyProvider)
	if err != nil {
		return nil, fmt.Errorf("cipher init error: %w", err)
	}

	tokens := auth.NewTokenService([]byte(cfg.SecretKey), cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenValidityDuration)
	hasher := cryptox.NewPasswordHasher()

	us := services.NewUserService(db, rm, hasher, tokens)
	ss := services.NewSecretService(db, rm, cipher)

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		tokens:  tokens,
		users:   us,
		secrets: ss,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	handler := httpapi.NewHandler(app.users, app.secrets, app.db, app.logger)
	router := httpapi.NewRouter(handler, app.tokens, app.config.CORSAllowedOrigins)

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, router, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
