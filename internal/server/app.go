// Package server wires the authgate collaborators together and runs the
// HTTP login API and the gRPC health endpoint until the process is
// signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/authgate/internal/cryptox"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/authority"
	"github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/httpapi"
	"github.com/dmitrijs2005/authgate/internal/server/ratelimit"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authgate/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/authgate/internal/server/grpc"
)

type syncer interface {
	Sync() error
}

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	redis        *redis.Client
	repoManager  repomanager.RepositoryManager
	loginService *services.LoginService
}

func NewApp(c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, os.Stdout, false)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	verifier := services.NewCredentialVerifier(repomanager.NewStorageView(db, rm), cryptox.NewHasher())
	tokens := authority.NewHTTPClient(c.AuthorityBaseURL, c.AuthorityTimeout, c.AuthoritySecret)

	app := &App{config: c, logger: logger, db: db, repoManager: rm}

	// a nil interface value disables throttling; a typed nil pointer would not
	var limiter services.FailureLimiter
	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		limiter = ratelimit.New(app.redis, ratelimit.Config{
			MaxFailedLogins: c.MaxFailedLogins,
			Window:          c.FailedLoginWindow,
		})
	}

	app.loginService = services.NewLoginService(verifier, tokens, limiter, logger.With("module", "login"))

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc, health *gs.HealthServer) {
	defer health.SetServing(false)

	h := httpapi.NewHandler(app.loginService, app.config.PublicPathPrefix, app.logger.With("module", "http_api"))
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, httpapi.NewRouter(h, app.logger), app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc, health *gs.HealthServer) {
	if err := health.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run applies migrations and serves until ctx is cancelled, a signal
// arrives, or one of the servers fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	defer app.close(ctx)

	if err := app.repoManager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	health := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc, health)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc, health)
	}()

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
	return nil
}

func (app *App) close(ctx context.Context) {
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(ctx, "redis close error", "error", err)
		}
	}

	// flush buffered zap entries; syncing a console stdout may fail and is ignored
	if s, ok := app.logger.(syncer); ok {
		_ = s.Sync()
	}
}
