package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/belgraph/reifier/internal/config"
	mid "github.com/belgraph/reifier/internal/server/middleware"
	"github.com/belgraph/reifier/internal/store"
	"github.com/belgraph/reifier/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// New builds the HTTP handler serving the networks of app.
func New(app *mid.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(app.Config.BodyLimit))

	RegisterRoutes(e)
	return e
}

// Init loads the networks from the data directory and serves them until
// the process is interrupted.
func Init(cfg config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	networks := store.NewNetworkStore(store.NetworkStoreParams{
		DataDir:  cfg.DataDir,
		Parallel: cfg.Parallel,
		Persist:  true,
	})
	if _, err := networks.Reload(ctx); err != nil {
		logger.Fatal("Failed to load networks", "dir", cfg.DataDir, "err", err)
	}

	e := New(&mid.App{Store: networks, Config: cfg})

	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
