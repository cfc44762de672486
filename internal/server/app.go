// Package server initializes and runs the API server: it wires the
// Postgres repositories, the domain services and the HTTP router, and
// handles graceful shutdown on OS signals.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ekarpova/resumecraft/internal/logging"
	"github.com/ekarpova/resumecraft/internal/server/config"
	"github.com/ekarpova/resumecraft/internal/server/httpapi"
	"github.com/ekarpova/resumecraft/internal/server/resumes"
	"github.com/ekarpova/resumecraft/internal/server/shared/db"
	"github.com/ekarpova/resumecraft/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config        *config.Config
	logger        logging.Logger
	userService   *users.Service
	resumeService *resumes.Service
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := users.NewService(rm.Users(), rm.RefreshTokens(), c)
	rs := resumes.NewService(rm.Resumes())

	return &App{config: c, logger: logger, userService: us, resumeService: rs}, nil
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.Addr)

	app.initSignalHandler(cancelFunc)

	router := httpapi.NewRouter(app.config, app.logger, app.userService, app.resumeService)

	srv := &http.Server{
		Addr:    app.config.Addr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, err.Error())
	}
}
