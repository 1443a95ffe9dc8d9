package middleware

import (
	"github.com/belgraph/reifier/internal/config"
	"github.com/belgraph/reifier/internal/store"

	"github.com/labstack/echo/v4"
)

type App struct {
	Store  *store.NetworkStore
	Config config.Config
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
